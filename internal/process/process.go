// Package process terminates the browser launched for downloads together
// with its helper processes.
package process

import "errors"

// ErrInvalidPID is returned for process ids that cannot name a group.
var ErrInvalidPID = errors.New("invalid process id")
