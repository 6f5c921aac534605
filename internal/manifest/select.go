package manifest

// Filter narrows which assets are eligible for generation.
type Filter struct {
	// ID restricts selection to a single asset. Empty matches every asset.
	ID string
	// Force selects assets regardless of their status.
	Force bool
}

// Selection is the outcome of applying a Filter to a Document.
type Selection struct {
	// Selected holds eligible assets in manifest order.
	Selected []*Asset
	// Skipped holds assets that matched the id filter but were excluded by status.
	Skipped []*Asset
	// Matched counts assets that passed the id filter.
	Matched int
}

// Matches reports whether the filter admits a.
func (f Filter) Matches(a *Asset) bool {
	if f.ID != "" && a.ID != f.ID {
		return false
	}
	return f.Force || a.EffectiveStatus() == StatusPlanned
}

// Select applies f to doc.
func Select(doc *Document, f Filter) Selection {
	var sel Selection
	for _, a := range doc.Assets {
		if f.ID != "" && a.ID != f.ID {
			continue
		}
		sel.Matched++
		if f.Matches(a) {
			sel.Selected = append(sel.Selected, a)
		} else {
			sel.Skipped = append(sel.Skipped, a)
		}
	}
	return sel
}

// Find returns the asset with the given id, or nil.
func (d *Document) Find(id string) *Asset {
	for _, a := range d.Assets {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// Counts tallies assets by effective status.
func (d *Document) Counts() map[Status]int {
	counts := make(map[Status]int)
	for _, a := range d.Assets {
		counts[a.EffectiveStatus()]++
	}
	return counts
}
