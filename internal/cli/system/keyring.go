package system

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/keyring"
	"github.com/julianstephens/elevate/internal/storage/postgres"
)

// userFor picks the keyring account: an explicit user, else the user in
// the configured connection string.
func userFor(user string) string {
	if user != "" {
		return user
	}
	return postgres.User(os.Getenv(constants.EnvDBConnection))
}

// KeyringSetCmd stores a database password in the OS keyring
type KeyringSetCmd struct {
	User     string `arg:"" optional:"" help:"Database user the password belongs to."`
	Password string `help:"Password to store. Prompted for when omitted."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	password := cmd.Password
	if password == "" {
		err := huh.NewInput().
			Title("Database password").
			EchoMode(huh.EchoModePassword).
			Value(&password).
			Run()
		if err != nil {
			return err
		}
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password must not be empty")
	}

	user := userFor(cmd.User)
	if err := keyring.SetPassword(user, password); err != nil {
		return fmt.Errorf("failed to store password in keyring: %w", err)
	}

	ctx.Println("✓ Password stored successfully in OS keyring")
	ctx.Println("  Connection strings for this user no longer need a password")
	return nil
}

// KeyringGetCmd shows whether a password is stored, masked
type KeyringGetCmd struct {
	User string `arg:"" optional:"" help:"Database user."`
}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	password, err := keyring.GetPassword(userFor(cmd.User))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no password found in keyring. Use 'elevate keyring set' to store one")
		}
		return fmt.Errorf("failed to retrieve password from keyring: %w", err)
	}

	ctx.Println("Password retrieved from keyring:")
	ctx.Println(maskPassword(password))
	return nil
}

// KeyringDeleteCmd removes a stored password
type KeyringDeleteCmd struct {
	User string `arg:"" optional:"" help:"Database user."`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeletePassword(userFor(cmd.User)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no password found in keyring")
		}
		return fmt.Errorf("failed to delete password from keyring: %w", err)
	}

	ctx.Println("✓ Password deleted from OS keyring")
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct {
	User string `arg:"" optional:"" help:"Database user."`
}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	ctx.Println("✓ OS keyring is available")

	_, err := keyring.GetPassword(userFor(cmd.User))
	switch {
	case err == nil:
		ctx.Println("✓ Password is stored in keyring")
	case errors.Is(err, keyring.ErrNotFound):
		ctx.Println("ℹ No password stored in keyring")
	default:
		return err
	}
	return nil
}

// maskPassword keeps the first and last character of longer secrets.
func maskPassword(password string) string {
	r := []rune(password)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return string(r[0]) + strings.Repeat("*", len(r)-2) + string(r[len(r)-1])
}
