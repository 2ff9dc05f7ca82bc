package validate

import "strings"

// ParseList splits comma-delimited text and trims each token. Empty tokens
// are kept so that "A,,B" does not compare equal to "A,B".
func ParseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// ParseNames is ParseList with empty tokens dropped, for display lists such as
// allergen labels.
func ParseNames(s string) []string {
	var out []string
	for _, p := range ParseList(s) {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
