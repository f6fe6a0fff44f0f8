package storage

import "errors"

var (
	// ErrNotFound is returned by Provider.Get when a key has no record.
	ErrNotFound = errors.New("record not found")
	// ErrNotLoaded is returned when a provider is used before Init or Load.
	ErrNotLoaded = errors.New("storage not loaded")
	// ErrDecode is returned when a stored payload cannot be decoded.
	ErrDecode = errors.New("failed to decode stored records")
)

// Provider is a durable key→blob store. Each key holds one named collection.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Records
	Get(key string) ([]byte, error)
	Put(key string, data []byte) error
	// Delete removes a record; deleting an absent key is not an error.
	Delete(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}
