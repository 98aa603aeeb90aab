package reorder

import "fmt"

// RecoveryError reports a reorder whose persistence failed part way.
// Snapshot holds the authoritative order reloaded after the failure, which
// may mix old and new positions. When the reload itself failed, Snapshot is
// the pre-reorder state and ReloadErr is set.
type RecoveryError struct {
	Err       error
	Snapshot  Snapshot
	Persisted int
	Total     int
	ReloadErr error
}

func (e *RecoveryError) Error() string {
	if e.ReloadErr != nil {
		return fmt.Sprintf("reorder interrupted after %d of %d updates: %v (reload failed: %v)",
			e.Persisted, e.Total, e.Err, e.ReloadErr)
	}
	return fmt.Sprintf("reorder interrupted after %d of %d updates: %v", e.Persisted, e.Total, e.Err)
}

func (e *RecoveryError) Unwrap() error { return e.Err }
