package domain

import "github.com/danielgtaylor/huma/v2"

// Schema tells huma that Date serializes as a YYYY-MM-DD string, matching
// MarshalText, instead of reflecting the struct fields.
func (d Date) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:    huma.TypeString,
		Format:  "date",
		Pattern: `^\d{4}-\d{2}-\d{2}$`,
	}
}
