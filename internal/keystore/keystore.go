// Package keystore implements the secure key/value store that holds the
// database encryption key. The backend persists small named secrets; the
// GetOrCreateKey helper guarantees that a key generated once is returned
// unchanged for the lifetime of the install.
package keystore

import (
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/cryptox"
)

// Store is a named-secret backend. Implementations must be durable: a value
// written by Set has to survive process restarts, otherwise the encrypted
// database becomes permanently unreadable.
type Store interface {
	// Get returns the value stored under name, or "" if absent.
	Get(name string) (string, error)

	// Set durably stores value under name, replacing any previous value.
	Set(name, value string) error

	// Delete removes the value stored under name. Deleting an absent name
	// is not an error.
	Delete(name string) error
}

// GetOrCreateKey looks up name in s and returns the stored key. If absent, a
// fresh 256-bit key is generated, hex-encoded, persisted and returned. Two
// sequential calls always return the identical value.
//
// Errors from the backend are returned as-is and must abort initialization:
// proceeding with an ephemeral key would strand the on-disk database.
func GetOrCreateKey(s Store, name string) (string, error) {
	existing, err := s.Get(name)
	if err != nil {
		return "", err
	}
	if existing != "" {
		return existing, nil
	}

	key, err := cryptox.NewKeyHex(cryptox.KeySize)
	if err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}

	if err := s.Set(name, key); err != nil {
		return "", err
	}
	return key, nil
}
