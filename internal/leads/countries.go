package leads

import "strings"

// Country is an entry in the phone prefix selector.
type Country struct {
	ISO      string
	Name     string
	DialCode string
	Flag     string
}

// Countries lists the selectable phone prefixes in display order. US and
// Canada share +1.
var Countries = []Country{
	{"US", "United States", "+1", "🇺🇸"},
	{"CA", "Canada", "+1", "🇨🇦"},
	{"GB", "United Kingdom", "+44", "🇬🇧"},
	{"IN", "India", "+91", "🇮🇳"},
	{"CN", "China", "+86", "🇨🇳"},
	{"JP", "Japan", "+81", "🇯🇵"},
	{"DE", "Germany", "+49", "🇩🇪"},
	{"FR", "France", "+33", "🇫🇷"},
	{"IT", "Italy", "+39", "🇮🇹"},
	{"ES", "Spain", "+34", "🇪🇸"},
	{"RU", "Russia", "+7", "🇷🇺"},
	{"BR", "Brazil", "+55", "🇧🇷"},
	{"MX", "Mexico", "+52", "🇲🇽"},
	{"AU", "Australia", "+61", "🇦🇺"},
	{"KR", "South Korea", "+82", "🇰🇷"},
	{"SG", "Singapore", "+65", "🇸🇬"},
	{"AE", "UAE", "+971", "🇦🇪"},
	{"SA", "Saudi Arabia", "+966", "🇸🇦"},
	{"NL", "Netherlands", "+31", "🇳🇱"},
	{"SE", "Sweden", "+46", "🇸🇪"},
	{"NO", "Norway", "+47", "🇳🇴"},
	{"DK", "Denmark", "+45", "🇩🇰"},
	{"CH", "Switzerland", "+41", "🇨🇭"},
	{"AT", "Austria", "+43", "🇦🇹"},
	{"BE", "Belgium", "+32", "🇧🇪"},
	{"PL", "Poland", "+48", "🇵🇱"},
}

// DialCodeFor returns the phone prefix for an ISO country code, or "" when
// the country is not in the selector.
func DialCodeFor(iso string) string {
	iso = strings.ToUpper(strings.TrimSpace(iso))
	for _, c := range Countries {
		if c.ISO == iso {
			return c.DialCode
		}
	}
	return ""
}

// IsKnownDialCode reports whether code is offered by the selector.
func IsKnownDialCode(code string) bool {
	for _, c := range Countries {
		if c.DialCode == code {
			return true
		}
	}
	return false
}
