package validate

import "fmt"

// Alignment is the operator's answer to the applicator alignment check.
type Alignment int

const (
	AlignmentIncorrect Alignment = iota
	AlignmentCorrect
)

// String returns the option label
func (a Alignment) String() string {
	if a == AlignmentCorrect {
		return "Correct"
	}
	return "Incorrect"
}

// AlignmentOptions lists the choices in display order.
func AlignmentOptions() []Alignment {
	return []Alignment{AlignmentCorrect, AlignmentIncorrect}
}

// ParseAlignment parses an option label
func ParseAlignment(s string) (Alignment, error) {
	switch s {
	case "Correct":
		return AlignmentCorrect, nil
	case "Incorrect":
		return AlignmentIncorrect, nil
	default:
		return AlignmentIncorrect, fmt.Errorf("invalid alignment: %s (valid: Correct, Incorrect)", s)
	}
}

// Check maps the answer to its message.
func (a Alignment) Check() Message {
	if a == AlignmentCorrect {
		return success("The applicators are correctly aligned!")
	}
	return failure("The applicators are misaligned. Please check the T-mark and T-end alignment.")
}

// Suitability is the operator's assessment of the chosen skin area.
type Suitability int

const (
	SuitabilitySuitable Suitability = iota
	SuitabilityUnsuitable
)

// String returns the option label
func (s Suitability) String() string {
	if s == SuitabilityUnsuitable {
		return "Unsuitable (hairy or uneven)"
	}
	return "Suitable (flat and clean)"
}

// SuitabilityOptions lists the choices in display order.
func SuitabilityOptions() []Suitability {
	return []Suitability{SuitabilitySuitable, SuitabilityUnsuitable}
}

// ParseSuitability parses an option label
func ParseSuitability(s string) (Suitability, error) {
	switch s {
	case "Suitable (flat and clean)":
		return SuitabilitySuitable, nil
	case "Unsuitable (hairy or uneven)":
		return SuitabilityUnsuitable, nil
	default:
		return SuitabilitySuitable, fmt.Errorf("invalid suitability: %s", s)
	}
}

// Check maps the answer to its message.
func (s Suitability) Check() Message {
	if s == SuitabilitySuitable {
		return success("The selected skin area is suitable for testing!")
	}
	return warning("Please select a flat, clean surface and avoid areas with excessive hair.")
}
