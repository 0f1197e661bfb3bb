// Command adduser creates a chat account from the terminal. It is meant for
// operators seeding an instance, bypassing the registration rate limit.
//
// Usage:
//
//	adduser <username>
//
// The password is prompted for twice without echo. Database connection
// settings come from the same environment variables and flags as the server.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/webchat-dev/webchat/internal/common"
	"github.com/webchat-dev/webchat/internal/server/auth"
	"github.com/webchat-dev/webchat/internal/server/config"
	"github.com/webchat-dev/webchat/internal/server/shared/db"
	"github.com/webchat-dev/webchat/internal/server/users"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {

	if len(os.Args) != 2 {
		return errors.New("usage: adduser <username>")
	}
	username := os.Args[1]

	password, err := promptPassword()
	if err != nil {
		return err
	}

	cfg := config.LoadConfig()

	rm, err := db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer rm.Close()

	svc := users.NewService(rm.Users(), auth.NewPasswordHasher(), cfg)

	user, err := svc.Register(context.Background(), username, password)
	if err != nil {
		if errors.Is(err, common.ErrorUsernameTaken) {
			return fmt.Errorf("username %q is already taken", username)
		}
		return err
	}

	fmt.Printf("created user %s (id %d)\n", user.Username, user.ID)
	return nil
}

func promptPassword() (string, error) {

	fmt.Print("Password: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("error reading password: %w", err)
	}

	fmt.Print("Repeat password: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("error reading password: %w", err)
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	if len(first) == 0 {
		return "", errors.New("password must not be empty")
	}

	return string(first), nil
}
