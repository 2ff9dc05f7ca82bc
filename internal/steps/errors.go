package steps

import "fmt"

// OutOfRangeError is returned when a step index falls outside [0, Count-1].
type OutOfRangeError struct {
	Index int
	Count int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("step index %d out of range [0, %d]", e.Index, e.Count-1)
}
