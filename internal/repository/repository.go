package repository

import "errors"

// ErrNotFound reports that a valid identifier matched no document. Handlers
// map it to 404, as opposed to driver failures which become 500.
var ErrNotFound = errors.New("not found")
