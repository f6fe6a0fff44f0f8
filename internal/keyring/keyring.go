// Package keyring stores database passwords in the OS credential store so
// they never appear in connection strings or config files.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/elevate/internal/constants"
)

var (
	ErrNotFound           = errors.New("password not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func account(user string) string {
	if user == "" {
		return constants.DefaultKeyringUser
	}
	return user
}

// GetPassword returns the password stored for a database user.
func GetPassword(user string) (string, error) {
	pw, err := keyring.Get(constants.AppName, account(user))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return pw, nil
}

// SetPassword stores the password for a database user, replacing any previous one.
func SetPassword(user, password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if err := keyring.Set(constants.AppName, account(user), password); err != nil {
		return fmt.Errorf("failed to store password in keyring: %w", err)
	}
	return nil
}

func DeletePassword(user string) error {
	if err := keyring.Delete(constants.AppName, account(user)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete password from keyring: %w", err)
	}
	return nil
}

// IsAvailable tries a read from the keyring. A not-found answer still
// means the backend works.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "availability-check")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
