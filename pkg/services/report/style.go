package report

// Role classifies a piece of report text so a presentation medium can decide
// how to decorate it.
type Role string

const (
	RoleHeader   Role = "header"
	RoleVendor   Role = "vendor"
	RoleSchool   Role = "school"
	RoleSKU      Role = "sku"
	RoleMoney    Role = "money"
	RoleLabel    Role = "label"
	RoleEmphasis Role = "emphasis"
	RoleWarning  Role = "warning"
)

// Styler decorates report text for one output medium. The rendering logic
// stays independent of terminals, files or API responses.
type Styler interface {
	Stylize(role Role, text string) string
}

// PlainStyler passes text through unchanged; used for files and tests.
type PlainStyler struct{}

func (PlainStyler) Stylize(_ Role, text string) string { return text }
