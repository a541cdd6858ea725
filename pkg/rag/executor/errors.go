package executor

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDocument means no document has been uploaded yet. Precondition
	// failure, the caller should upload before chatting.
	ErrNoDocument = errors.New("no document has been uploaded yet")

	// ErrCollaborator marks a failed model call or store operation. The
	// turn aborted without persisting anything and can be retried as-is.
	ErrCollaborator = errors.New("pipeline collaborator failed")
)

func collaboratorError(stage string, err error) error {
	return fmt.Errorf("%s: %w: %w", stage, ErrCollaborator, err)
}
