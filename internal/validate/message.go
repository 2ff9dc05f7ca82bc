// Package validate holds the per-step checks run over captured inputs. Every
// check yields a Message for display; none of them gates navigation.
package validate

// Level is the severity of a validation message.
type Level int

const (
	LevelNone Level = iota
	LevelSuccess
	LevelInfo
	LevelWarning
	LevelError
)

// String returns the lowercase name of the level
func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "none"
	}
}

// Message is a human-readable validation outcome.
type Message struct {
	Level Level
	Text  string
}

// IsZero reports whether there is nothing to display.
func (m Message) IsZero() bool {
	return m.Level == LevelNone && m.Text == ""
}

// OK reports whether the check passed.
func (m Message) OK() bool {
	return m.Level == LevelSuccess
}

func success(text string) Message { return Message{Level: LevelSuccess, Text: text} }
func warning(text string) Message { return Message{Level: LevelWarning, Text: text} }
func failure(text string) Message { return Message{Level: LevelError, Text: text} }
