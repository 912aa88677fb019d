package errs

import (
	"errors"
)

var (
	ErrNotFound                 = errors.New("book not found")
	ErrMissingName              = errors.New("name is required")
	ErrReadPageExceedsPageCount = errors.New("readPage must not exceed pageCount")
	ErrInvalidPayload           = errors.New("invalid payload")
	ErrInsertFailed             = errors.New("book insert failed")
)
