package metadata

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

const notAvailable = "N/A"

// Summary is the human-readable digest of a metadata document.
type Summary struct {
	ID       string
	Category string
	Section  string
	File     string

	// HasMetadata is set when the document carries a "metadata" object.
	HasMetadata bool
	Polycount   string
	FileSize    string
	Version     string
}

// Summarize extracts the summary fields from doc. Absent values print as N/A.
func Summarize(doc *Document) Summary {
	s := Summary{
		ID:       text(doc.Field("id")),
		Category: text(doc.Field("category")),
		Section:  text(doc.Field("section")),
		File:     text(doc.Field("file")),
	}

	if _, ok := doc.Field("metadata"); !ok {
		return s
	}
	s.HasMetadata = true

	s.Polycount = notAvailable
	if raw, ok := doc.Meta("polycount"); ok {
		if n, ok := number(raw); ok {
			s.Polycount = printer.Sprintf("%d", int64(n))
		} else {
			s.Polycount = fmt.Sprint(raw)
		}
	}

	size := 0.0
	if raw, ok := doc.Meta("fileSize"); ok {
		size, _ = number(raw)
	}
	s.FileSize = fmt.Sprintf("%.1f KB", size/1024)

	s.Version = text(doc.Meta("version"))
	return s
}

// Write prints the summary one field per line.
func (s Summary) Write(w io.Writer) {
	fmt.Fprintf(w, "ID: %s\n", s.ID)
	fmt.Fprintf(w, "Category: %s\n", s.Category)
	fmt.Fprintf(w, "Section: %s\n", s.Section)
	fmt.Fprintf(w, "File: %s\n", s.File)
	if !s.HasMetadata {
		return
	}
	fmt.Fprintf(w, "Polycount: %s\n", s.Polycount)
	fmt.Fprintf(w, "File size: %s\n", s.FileSize)
	fmt.Fprintf(w, "Version: %s\n", s.Version)
}

func text(v any, ok bool) string {
	if !ok || v == nil {
		return notAvailable
	}
	return fmt.Sprint(v)
}
