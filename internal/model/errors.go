package model

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
)

// StaleDecisionError is returned when deciding a version that already
// left pending. It carries the current status so the caller can
// re-fetch instead of retrying blindly.
type StaleDecisionError struct {
	VersionID uint
	Status    VersionStatus
}

func (e *StaleDecisionError) Error() string {
	return fmt.Sprintf("version %d already decided: %s", e.VersionID, e.Status)
}
