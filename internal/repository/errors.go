package repository

import "errors"

// Sentinel errors returned by repository operations. Callers branch on
// these explicitly; anything else is an I/O failure and aborts the
// request.
var (
	// ErrNotFound means the addressed cupboard or item does not exist.
	ErrNotFound = errors.New("cupboard or item not found")

	// ErrNotAuthorized means a non-admin actor tried to return an item
	// borrowed by somebody else.
	ErrNotAuthorized = errors.New("item was borrowed by another user")
)

// NotAuthorizedError carries the names of the item and cupboard that
// rejected a return, so the web layer can build its message. It matches
// ErrNotAuthorized under errors.Is.
type NotAuthorizedError struct {
	ItemName     string
	CupboardName string
}

func (e *NotAuthorizedError) Error() string {
	return ErrNotAuthorized.Error()
}

// Is lets errors.Is(err, ErrNotAuthorized) succeed on this type.
func (e *NotAuthorizedError) Is(target error) bool {
	return target == ErrNotAuthorized
}
