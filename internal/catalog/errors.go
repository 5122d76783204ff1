package catalog

import "errors"

var (
	ErrRootInvalid   = errors.New("catalog root is not a directory")
	ErrIndexLocked   = errors.New("could not acquire lock on index file")
	ErrEntryNotFound = errors.New("no catalog entry with this identity")
)
