package console

import "github.com/de-tools/erate-atlas/pkg/services/report"

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiHeader = "\033[95m"
	ansiBlue   = "\033[94m"
	ansiCyan   = "\033[96m"
	ansiGreen  = "\033[92m"
	ansiYellow = "\033[93m"
	ansiRed    = "\033[91m"
	ansiVendor = "\033[1;36m"
	ansiSchool = "\033[1;33m"
	ansiSKU    = "\033[37m"
)

// ANSIStyler decorates report text with terminal color codes.
type ANSIStyler struct{}

func (ANSIStyler) Stylize(role report.Role, text string) string {
	switch role {
	case report.RoleHeader:
		return ansiBold + ansiHeader + text + ansiReset
	case report.RoleVendor:
		return ansiBold + ansiVendor + text + ansiReset
	case report.RoleSchool:
		return ansiBold + ansiSchool + text + ansiReset
	case report.RoleSKU:
		return ansiSKU + text + ansiReset
	case report.RoleMoney:
		return ansiBold + ansiGreen + text + ansiReset
	case report.RoleLabel:
		return ansiCyan + text + ansiReset
	case report.RoleEmphasis:
		return ansiBold + text + ansiReset
	case report.RoleWarning:
		return ansiRed + text + ansiReset
	default:
		return text
	}
}
