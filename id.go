package tracker

import "fmt"

// ID is an opaque holding identifier. The concrete representation is
// owned by the IDService implementation.
type ID interface {
	fmt.Stringer
}

type IDService interface {
	NewID() ID

	NewIDFromString(id string) (ID, error)
}
