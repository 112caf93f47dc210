package practice

import "fmt"

// ValidationError reports a missing or malformed session parameter.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports a missing lesson or an empty word source.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("no %s found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// OutOfRangeError reports a group number outside [1, GroupCount].
type OutOfRangeError struct {
	GroupNumber int
	GroupCount  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("groupNumber %d is out of range: there are %d groups", e.GroupNumber, e.GroupCount)
}
