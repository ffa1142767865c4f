package domain

// TaxonomyMode controls how manufacturer names without an alias mapping are
// treated during normalization.
type TaxonomyMode int

const (
	// TaxonomyStrict drops records whose manufacturer has no alias mapping.
	TaxonomyStrict TaxonomyMode = iota
	// TaxonomyPermissive keeps unmapped manufacturers as pass-through vendors.
	// Used for whole-dataset state/year scans.
	TaxonomyPermissive
)

// CanonicalVendor is a normalized manufacturer identity collapsing raw name
// variants (e.g. "HPE", "Aruba Networks") to one display name. Canonical is
// false when the raw name had no alias mapping and is carried through as-is.
type CanonicalVendor struct {
	ID        string
	Display   string
	Canonical bool
}
