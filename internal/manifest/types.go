package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Status is the lifecycle state of an asset. Values other than the three
// constants are allowed and are treated as "not planned".
type Status string

// Known statuses.
const (
	StatusPlanned  Status = "planned"
	StatusComplete Status = "complete"
	StatusFailed   Status = "failed"

	// StatusNone is reported for an explicit "status": null.
	StatusNone Status = "none"
)

// Document is the whole asset list.
type Document struct {
	Version string     `json:"version,omitempty"`
	Assets  []*Asset   `json:"assets"`
	Updated *Timestamp `json:"updated,omitempty"`

	// Extra holds top-level keys not modeled above, written back unchanged.
	Extra map[string]json.RawMessage `json:"-"`
}

// Asset is one planned asset.
type Asset struct {
	ID          string     `json:"id"`
	Section     string     `json:"section"`
	Status      Status     `json:"status,omitempty"`
	Description string     `json:"description,omitempty"`
	CompletedAt *Timestamp `json:"completed_at,omitempty"`
	FailedAt    *Timestamp `json:"failed_at,omitempty"`

	// Extra holds asset keys not modeled above, written back unchanged.
	Extra map[string]json.RawMessage `json:"-"`

	// statusNull is set when the list stored "status": null.
	statusNull bool
}

var (
	documentKeys = []string{"version", "assets", "updated"}
	assetKeys    = []string{"id", "section", "status", "description", "completed_at", "failed_at"}
)

// EffectiveStatus returns the asset's status, treating an absent status as
// planned. A null status is StatusNone, which is never planned.
func (a *Asset) EffectiveStatus() Status {
	switch {
	case a.Status != "":
		return a.Status
	case a.statusNull:
		return StatusNone
	default:
		return StatusPlanned
	}
}

// MarkComplete records a successful generation. FailedAt is left as is.
func (a *Asset) MarkComplete(at time.Time) {
	a.Status = StatusComplete
	a.statusNull = false
	a.CompletedAt = NewTimestamp(at)
}

// MarkFailed records a failed generation. CompletedAt is left as is.
func (a *Asset) MarkFailed(at time.Time) {
	a.Status = StatusFailed
	a.statusNull = false
	a.FailedAt = NewTimestamp(at)
}

// MarshalJSON writes the modeled fields followed by the preserved extras.
func (d Document) MarshalJSON() ([]byte, error) {
	type alias Document
	known, err := json.Marshal(alias(d))
	if err != nil {
		return nil, err
	}
	return mergeExtra(known, d.Extra)
}

// UnmarshalJSON decodes the modeled fields and keeps every other key.
func (d *Document) UnmarshalJSON(data []byte) error {
	type alias Document
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := collectExtra(data, documentKeys)
	if err != nil {
		return err
	}
	*d = Document(a)
	d.Extra = extra
	return nil
}

// MarshalJSON writes the modeled fields followed by the preserved extras.
// A null status read from the list is written back as null.
func (a Asset) MarshalJSON() ([]byte, error) {
	type alias Asset
	known, err := json.Marshal(alias(a))
	if err != nil {
		return nil, err
	}
	extra := a.Extra
	if a.statusNull && a.Status == "" {
		extra = make(map[string]json.RawMessage, len(a.Extra)+1)
		for k, v := range a.Extra {
			extra[k] = v
		}
		extra["status"] = json.RawMessage("null")
	}
	return mergeExtra(known, extra)
}

// UnmarshalJSON decodes the modeled fields and keeps every other key.
func (a *Asset) UnmarshalJSON(data []byte) error {
	type alias Asset
	var al alias
	if err := json.Unmarshal(data, &al); err != nil {
		return err
	}
	var status struct {
		Raw json.RawMessage `json:"status"`
	}
	if err := json.Unmarshal(data, &status); err != nil {
		return err
	}
	extra, err := collectExtra(data, assetKeys)
	if err != nil {
		return err
	}
	*a = Asset(al)
	a.Extra = extra
	a.statusNull = string(status.Raw) == "null"
	return nil
}

// collectExtra returns the keys of a JSON object that are not in known.
func collectExtra(data []byte, known []string) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(raw, k)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// mergeExtra splices extra keys into an encoded JSON object.
func mergeExtra(known []byte, extra map[string]json.RawMessage) ([]byte, error) {
	if len(extra) == 0 {
		return known, nil
	}
	rest, err := json.Marshal(extra)
	if err != nil {
		return nil, fmt.Errorf("encoding extra fields: %w", err)
	}

	known = bytes.TrimSpace(known)
	var buf bytes.Buffer
	buf.Write(known[:len(known)-1])
	if len(known) > 2 {
		buf.WriteByte(',')
	}
	buf.Write(rest[1:])
	return buf.Bytes(), nil
}

// Timestamp is a point in time as stored in the asset list. It is written as
// RFC 3339 and read from either RFC 3339 or a naive ISO-8601 local time.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// ParseTimestamp parses s using the accepted timestamp layouts.
// Naive timestamps are interpreted in the local time zone.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
