package store

import "fmt"

// UnknownTitleError is returned when a stored selection references a title
// the current catalog no longer carries, which happens when a custom catalog
// shrinks between runs.
type UnknownTitleError struct {
	Title string
}

func (e *UnknownTitleError) Error() string {
	return fmt.Sprintf("stored selection references unknown achievement %q", e.Title)
}
