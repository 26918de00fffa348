// Package storage manages operation-scoped intermediate directories and
// optional publishing of finished outputs. Multi-phase edits write their
// intermediate segments into a per-operation work directory that is removed
// when the operation concludes, success or failure.
package storage

import (
	"context"
	"errors"
)

// ErrPublishNotConfigured is returned when publishing is requested but no
// remote store is configured.
var ErrPublishNotConfigured = errors.New("result publishing is not configured")

// Storage provides scratch space for multi-phase operations and optional
// delivery of final outputs.
type Storage interface {
	// NewWorkDir creates a fresh directory for one operation's
	// intermediate files. The op name is a hint for the directory name.
	NewWorkDir(ctx context.Context, op string) (string, error)

	// RemoveWorkDir deletes a work directory and everything in it.
	RemoveWorkDir(ctx context.Context, dir string) error

	// Publish uploads a finished output file under the given key and
	// returns its URL. Implementations without a remote backend return
	// ErrPublishNotConfigured.
	Publish(ctx context.Context, localPath, key string) (url string, err error)
}
