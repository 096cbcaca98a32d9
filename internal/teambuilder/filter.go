package teambuilder

import (
	"strings"

	"github.com/FlagBrew/local-teambuilder/internal/models"
	"golang.org/x/text/cases"
)

// Filter returns the entries whose name contains query (ignoring case) and that match typ and
// region. An empty typ or region matches everything. Input order is preserved.
func Filter(entries []models.CatalogEntry, query, typ, region string) []models.CatalogEntry {
	fold := cases.Fold()
	query = fold.String(query)

	out := []models.CatalogEntry{}
	for _, entry := range entries {
		if !strings.Contains(fold.String(entry.Name), query) {
			continue
		}

		if typ != "" && entry.PrimaryType != typ && entry.SecondaryType != typ {
			continue
		}

		if region != "" && entry.Region != region {
			continue
		}

		out = append(out, entry)
	}

	return out
}

type optionSet struct {
	seen    map[string]struct{}
	options []string
}

func newOptionSet() *optionSet {
	return &optionSet{seen: map[string]struct{}{}, options: []string{}}
}

func (o *optionSet) add(v string) {
	if v == "" {
		return
	}
	if _, ok := o.seen[v]; ok {
		return
	}
	o.seen[v] = struct{}{}
	o.options = append(o.options, v)
}

// DeriveTypeOptions returns the distinct primary and secondary types in first-seen order.
func DeriveTypeOptions(entries []models.CatalogEntry) []string {
	set := newOptionSet()
	for _, entry := range entries {
		set.add(entry.PrimaryType)
		set.add(entry.SecondaryType)
	}
	return set.options
}

// DeriveRegionOptions returns the distinct regions in first-seen order.
func DeriveRegionOptions(entries []models.CatalogEntry) []string {
	set := newOptionSet()
	for _, entry := range entries {
		set.add(entry.Region)
	}
	return set.options
}
