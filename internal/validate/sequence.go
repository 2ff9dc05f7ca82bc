package validate

import "slices"

// DefaultReferenceSequence is the standard allergen order on the tray box.
var DefaultReferenceSequence = []string{"A", "B", "C", "D"}

// SequenceMatches reports exact, ordered, case-sensitive equality after the
// input has been split and trimmed.
func SequenceMatches(input string, reference []string) bool {
	return slices.Equal(ParseList(input), reference)
}

// SequenceCheck validates a testing-set sequence. Empty input produces no
// message.
func SequenceCheck(input string, reference []string) Message {
	if input == "" {
		return Message{}
	}
	if SequenceMatches(input, reference) {
		return success("Sequence matches the standard allergen sequence!")
	}
	return failure("Sequence does not match the standard allergen sequence. Please check and try again.")
}
