// Package storage defines the persistence adapter used to mirror the
// checklist to durable key-value storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable indicates the underlying storage could not complete a
// read or write. Backends wrap their failures with it.
var ErrUnavailable = errors.New("storage unavailable")

// ErrInvalidKey indicates a key that no backend accepts.
var ErrInvalidKey = errors.New("invalid storage key")

// Adapter stores text blobs by key.
//
// Write is an atomic single-key replace: it either fully replaces the
// prior value or fails and leaves the prior value intact.
type Adapter interface {
	// Read returns the stored text for key. ok is false if the key was
	// never written.
	Read(ctx context.Context, key string) (text string, ok bool, err error)

	// Write overwrites the value for key.
	Write(ctx context.Context, key, text string) error
}

// ValidateKey rejects keys that are empty or could escape a namespace
// (path separators, parent references).
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Unavailable wraps err with ErrUnavailable unless it already is one.
// err stays in the chain, so errors.Is still matches ErrInvalidKey.
func Unavailable(op, key string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %s %q: %w", ErrUnavailable, op, key, err)
}
