package assets

// ItemRecord is the persisted projection of an Item. Only these four fields
// survive a snapshot; any other handler state is display-only and excluded.
type ItemRecord struct {
	ID     string            `json:"id"`
	Key    string            `json:"key"`
	Base64 string            `json:"base64,omitempty"`
	Style  map[string]string `json:"style,omitempty"`
}

// Snapshot captures every live handler's item list, keyed by title. It is
// embedded as a field of the larger project-save document.
func (r *Registry) Snapshot() map[string][]ItemRecord {
	snap := make(map[string][]ItemRecord)
	for _, d := range r.Descriptors() {
		h := d.Instance()
		if h == nil {
			continue
		}
		items := h.Items()
		records := make([]ItemRecord, 0, len(items))
		for _, it := range items {
			records = append(records, ItemRecord{
				ID:     it.ID,
				Key:    it.Key,
				Base64: it.Base64,
				Style:  it.Style,
			})
		}
		snap[d.Title] = records
	}
	return snap
}

// Restore replaces item lists wholesale for every title in the snapshot
// that has a matching live handler. Titles without one are silently
// ignored.
func (r *Registry) Restore(snap map[string][]ItemRecord) {
	for title, records := range snap {
		d := r.LookupByTitle(title)
		if d == nil {
			continue
		}
		h := d.Instance()
		if h == nil {
			continue
		}
		items := make([]Item, 0, len(records))
		for _, rec := range records {
			items = append(items, Item{
				ID:     rec.ID,
				Key:    rec.Key,
				Base64: rec.Base64,
				Style:  rec.Style,
			})
		}
		h.ReplaceItems(items)
	}
}
