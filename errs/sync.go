package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Synchronization & Backup Errors
var (
	ErrInvalidBackupDocument = errors.New("invalid backup document")
	ErrRecordSyncFailed      = errors.New("record sync failed")
	ErrSyncCancelled         = errors.New("sync cancelled")
	ErrCategoryInUse         = errors.New("category referenced by existing projects")
)

// NewInvalidBackupDocumentError is fatal for a restore: raised during
// validation, before any write is attempted.
func NewInvalidBackupDocumentError(reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidBackupDocument,
		Details:    reason,
		Field:      "document",
	}
}

// NewRecordSyncError describes a single record that could not be written.
// These are always recovered inside the engine loop, never propagated.
func NewRecordSyncError(entity, naturalKey string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnprocessableEntity,
		err:        ErrRecordSyncFailed,
		Details:    fmt.Sprintf("Failed to write %s %q", entity, naturalKey),
		Cause:      cause,
		Field:      entity,
	}
}

func NewSyncCancelledError(phase string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusRequestTimeout,
		err:        ErrSyncCancelled,
		Details:    fmt.Sprintf("Cancelled during %s phase", phase),
		Cause:      cause,
		Field:      "context",
	}
}

func NewCategoryInUseError(name string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrCategoryInUse,
		Details:    fmt.Sprintf("Category %q cannot be deleted while projects reference it", name),
		Field:      "category",
	}
}

func IsInvalidBackupDocument(err error) bool {
	return errors.Is(err, ErrInvalidBackupDocument)
}

func IsRecordSyncFailed(err error) bool {
	return errors.Is(err, ErrRecordSyncFailed)
}

func IsSyncCancelled(err error) bool {
	return errors.Is(err, ErrSyncCancelled)
}

func IsCategoryInUse(err error) bool {
	return errors.Is(err, ErrCategoryInUse)
}
