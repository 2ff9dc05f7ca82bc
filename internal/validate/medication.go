package validate

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultInterferingMedications are medication classes known to suppress
// skin-prick reactions.
var DefaultInterferingMedications = []string{"antihistamines", "antiemetics", "tranquilizers"}

// MedicationEntry is derived from the raw medication text every time it
// changes.
type MedicationEntry struct {
	Raw        string
	Parsed     []string
	Interferes bool
}

// ParseMedications splits, trims and lowercases medication text.
func ParseMedications(raw string) []string {
	lower := cases.Lower(language.Und)
	tokens := ParseList(raw)
	for i, tok := range tokens {
		tokens[i] = lower.String(tok)
	}
	return tokens
}

// NewMedicationEntry derives the parsed list and interference flag. A token
// must equal a member of interfering, ignoring case; substrings never match.
func NewMedicationEntry(raw string, interfering []string) MedicationEntry {
	parsed := ParseMedications(raw)
	lower := cases.Lower(language.Und)
	known := make([]string, len(interfering))
	for i, med := range interfering {
		known[i] = lower.String(strings.TrimSpace(med))
	}
	flag := slices.ContainsFunc(parsed, func(tok string) bool {
		return slices.Contains(known, tok)
	})
	return MedicationEntry{Raw: raw, Parsed: parsed, Interferes: flag}
}

// Check returns the interference warning, or no message.
func (m MedicationEntry) Check() Message {
	if m.Interferes {
		return warning("This medication may interfere with the test results. Please review carefully.")
	}
	return Message{}
}
