package buffer

import "errors"

// Sentinel errors returned by Buffer operations.
var (
	// ErrExists is returned by Save when the target path already exists
	// and force was not requested.
	ErrExists = errors.New("buffer: file exists, use force to overwrite")
)
