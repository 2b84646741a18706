package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/iudanet/marketdash/internal/validation"
)

func (c *Cli) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	remember := fs.Bool("remember", false, "keep the session for longer")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid login arguments: %w", err)
	}

	c.io.Println("=== Login ===")
	c.io.Println()

	identifier := fs.Arg(0)
	if identifier == "" {
		var err error
		identifier, err = c.io.ReadInput("Email or username: ")
		if err != nil {
			return fmt.Errorf("failed to read email or username: %w", err)
		}
	}

	password, _, err := c.getPassword("Password: ")
	if err != nil {
		return err
	}

	if err := validation.ValidateLogin(identifier, password); err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	user, err := c.session.Login(ctx, identifier, password, *remember)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Username: %s\n", user.Username)
	c.io.Printf("Email: %s\n", user.Email)
	c.io.Printf("Role: %s\n", user.Role)
	c.printTokenExpiry(ctx)
	c.io.Println()
	c.io.Println("Your session has been saved.")

	return nil
}
