package shared

import "fmt"

// PartialCreateError reports a line-item post that failed after the parent
// entity (and possibly earlier lines) had already been created. There is no
// compensating rollback; the window is documented behavior.
type PartialCreateError struct {
	Entity     string
	ID         int64
	LinesAdded int
	Err        error
}

func (e *PartialCreateError) Error() string {
	return fmt.Sprintf("%s %d created but line %d failed: %v", e.Entity, e.ID, e.LinesAdded+1, e.Err)
}

func (e *PartialCreateError) Unwrap() error {
	return e.Err
}
