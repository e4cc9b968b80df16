package catalog

// Catalog is an ordered list of datasets.
type Catalog []Dataset

// Families returns family names in first-appearance order.
func (c Catalog) Families() []string {
	var families []string
	seen := make(map[string]bool)
	for _, d := range c {
		if !seen[d.Family] {
			seen[d.Family] = true
			families = append(families, d.Family)
		}
	}
	return families
}

// Family returns the datasets of one family, in catalog order.
func (c Catalog) Family(name string) Catalog {
	var out Catalog
	for _, d := range c {
		if d.Family == name {
			out = append(out, d)
		}
	}
	return out
}

// Validate validates every dataset and rejects duplicate names.
func (c Catalog) Validate() error {
	seen := make(map[string]bool, len(c))
	for _, d := range c {
		if err := d.Validate(); err != nil {
			return err
		}
		if seen[d.Name] {
			return &DuplicateError{Name: d.Name}
		}
		seen[d.Name] = true
	}
	return nil
}

// Merge returns c with extra applied: an entry whose name already exists
// replaces it in place, other entries are appended in order.
func (c Catalog) Merge(extra Catalog) Catalog {
	out := make(Catalog, len(c), len(c)+len(extra))
	copy(out, c)

	index := make(map[string]int, len(out))
	for i, d := range out {
		index[d.Name] = i
	}
	for _, d := range extra {
		if i, ok := index[d.Name]; ok {
			out[i] = d
			continue
		}
		index[d.Name] = len(out)
		out = append(out, d)
	}
	return out
}

// DuplicateError reports two datasets sharing a name.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return "duplicate dataset name: " + e.Name
}
