package manifest

import (
	"testing"
	"time"
)

func sampleDoc() *Document {
	return &Document{Assets: []*Asset{
		{ID: "station-home", Section: "home", Status: StatusPlanned},
		{ID: "station-store", Section: "store", Status: StatusComplete},
		{ID: "station-gallery", Section: "gallery", Status: StatusFailed},
		{ID: "station-blog", Section: "blog"},
		{ID: "station-archive", Section: "archive", Status: "on-hold"},
	}}
}

func ids(assets []*Asset) []string {
	out := make([]string, len(assets))
	for i, a := range assets {
		out[i] = a.ID
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name        string
		filter      Filter
		wantSel     []string
		wantSkipped []string
		wantMatched int
	}{
		{
			name:        "planned only",
			filter:      Filter{},
			wantSel:     []string{"station-home", "station-blog"},
			wantSkipped: []string{"station-store", "station-gallery", "station-archive"},
			wantMatched: 5,
		},
		{
			name:        "force selects every status in order",
			filter:      Filter{Force: true},
			wantSel:     []string{"station-home", "station-store", "station-gallery", "station-blog", "station-archive"},
			wantSkipped: nil,
			wantMatched: 5,
		},
		{
			name:        "id filter on planned asset",
			filter:      Filter{ID: "station-blog"},
			wantSel:     []string{"station-blog"},
			wantSkipped: nil,
			wantMatched: 1,
		},
		{
			name:        "id filter on complete asset without force",
			filter:      Filter{ID: "station-store"},
			wantSel:     nil,
			wantSkipped: []string{"station-store"},
			wantMatched: 1,
		},
		{
			name:        "id filter on complete asset with force",
			filter:      Filter{ID: "station-store", Force: true},
			wantSel:     []string{"station-store"},
			wantSkipped: nil,
			wantMatched: 1,
		},
		{
			name:        "id filter matching nothing",
			filter:      Filter{ID: "station-missing"},
			wantSel:     nil,
			wantSkipped: nil,
			wantMatched: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := Select(sampleDoc(), tt.filter)
			if got := ids(sel.Selected); !equalStrings(got, tt.wantSel) {
				t.Errorf("Selected = %v, want %v", got, tt.wantSel)
			}
			if got := ids(sel.Skipped); !equalStrings(got, tt.wantSkipped) {
				t.Errorf("Skipped = %v, want %v", got, tt.wantSkipped)
			}
			if sel.Matched != tt.wantMatched {
				t.Errorf("Matched = %d, want %d", sel.Matched, tt.wantMatched)
			}
		})
	}
}

func TestSelect_EachPlannedAssetOnce(t *testing.T) {
	doc := sampleDoc()
	sel := Select(doc, Filter{})

	seen := make(map[string]int)
	for _, a := range sel.Selected {
		seen[a.ID]++
	}
	for _, a := range doc.Assets {
		if a.EffectiveStatus() != StatusPlanned {
			continue
		}
		if seen[a.ID] != 1 {
			t.Errorf("%s selected %d times, want exactly once", a.ID, seen[a.ID])
		}
	}
}

func TestMarkComplete_LeavesFailedAt(t *testing.T) {
	failedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a := &Asset{ID: "station-home", Section: "home", Status: StatusFailed, FailedAt: NewTimestamp(failedAt)}

	now := time.Now()
	a.MarkComplete(now)

	if a.Status != StatusComplete {
		t.Errorf("Status = %q, want complete", a.Status)
	}
	if a.CompletedAt == nil || !a.CompletedAt.Equal(now) {
		t.Errorf("CompletedAt = %v, want %v", a.CompletedAt, now)
	}
	if a.FailedAt == nil || !a.FailedAt.Equal(failedAt) {
		t.Errorf("FailedAt changed to %v, want %v", a.FailedAt, failedAt)
	}
}

func TestMarkFailed_LeavesCompletedAt(t *testing.T) {
	completedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a := &Asset{ID: "station-home", Section: "home", Status: StatusComplete, CompletedAt: NewTimestamp(completedAt)}

	now := time.Now()
	a.MarkFailed(now)

	if a.Status != StatusFailed {
		t.Errorf("Status = %q, want failed", a.Status)
	}
	if a.FailedAt == nil || !a.FailedAt.Equal(now) {
		t.Errorf("FailedAt = %v, want %v", a.FailedAt, now)
	}
	if a.CompletedAt == nil || !a.CompletedAt.Equal(completedAt) {
		t.Errorf("CompletedAt changed to %v, want %v", a.CompletedAt, completedAt)
	}
}

func TestDocumentFindAndCounts(t *testing.T) {
	doc := sampleDoc()

	if a := doc.Find("station-gallery"); a == nil || a.Section != "gallery" {
		t.Errorf("Find(station-gallery) = %v", a)
	}
	if a := doc.Find("nope"); a != nil {
		t.Errorf("Find(nope) = %v, want nil", a)
	}

	counts := doc.Counts()
	if counts[StatusPlanned] != 2 {
		t.Errorf("planned = %d, want 2", counts[StatusPlanned])
	}
	if counts[StatusComplete] != 1 || counts[StatusFailed] != 1 || counts["on-hold"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}
