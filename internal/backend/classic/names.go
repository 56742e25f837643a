package classic

import "strings"

// SanitizeNodeName rewrites a registration name so the messaging layer
// accepts it as a node name: every character outside [A-Za-z0-9_] is
// replaced with an underscore, then leading and trailing underscores
// are trimmed.
func SanitizeNodeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
