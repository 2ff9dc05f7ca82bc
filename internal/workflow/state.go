// Package workflow owns per-session navigation state for the guided test.
package workflow

// Field identifies a value captured by one of the step screens.
type Field string

const (
	FieldKitChecked      Field = "kit_checked"      // []string of checked kit item names
	FieldKitPhoto        Field = "kit_photo"        // upload path
	FieldWellsReady      Field = "wells_ready"      // bool
	FieldLabelsDone      Field = "labels_done"      // bool
	FieldAllergenLabels  Field = "allergen_labels"  // raw comma-separated text
	FieldTrayPhoto       Field = "tray_photo"       // upload path
	FieldSequence        Field = "sequence"         // raw comma-separated text
	FieldAlignment       Field = "alignment"        // "Correct" or "Incorrect"
	FieldSuitability     Field = "suitability"      // suitability option label
	FieldLeftPressed     Field = "left_pressed"     // bool
	FieldRightPressed    Field = "right_pressed"    // bool
	FieldReactionPhoto   Field = "reaction_photo"   // upload path
	FieldReadingComplete Field = "reading_complete" // bool
	FieldMedications     Field = "medications"      // raw comma-separated text
)

// State is the mutable record of one session: where the operator is and what
// they have entered so far. A State is owned by a single writer.
type State struct {
	SessionID   string
	CurrentStep int
	values      map[Field]any
}

// NewState returns a state positioned on the first step.
func NewState(sessionID string) *State {
	return &State{
		SessionID: sessionID,
		values:    make(map[Field]any),
	}
}

// Set stores a value for a field.
func (s *State) Set(f Field, v any) {
	s.values[f] = v
}

// Value returns the raw value for a field.
func (s *State) Value(f Field) (any, bool) {
	v, ok := s.values[f]
	return v, ok
}

// String returns a string field, or "" if unset or of another type.
func (s *State) String(f Field) string {
	v, _ := s.values[f].(string)
	return v
}

// Bool returns a bool field, or false if unset.
func (s *State) Bool(f Field) bool {
	v, _ := s.values[f].(bool)
	return v
}

// Strings returns a string list field.
func (s *State) Strings(f Field) []string {
	v, _ := s.values[f].([]string)
	return v
}

// Reset clears captured values and returns to the first step.
func (s *State) Reset() {
	s.CurrentStep = 0
	s.values = make(map[Field]any)
}
