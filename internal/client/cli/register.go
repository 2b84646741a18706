package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/marketdash/internal/validation"
	pkgapi "github.com/iudanet/marketdash/pkg/api"
)

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	// Необязательное поле
	wallet, err := c.io.ReadInput("Wallet address (optional): ")
	if err != nil {
		return fmt.Errorf("failed to read wallet address: %w", err)
	}

	password, source, err := c.getPassword(fmt.Sprintf("Password (min %d chars): ", validation.MinPasswordLen))
	if err != nil {
		return err
	}

	// Подтверждение нужно только при интерактивном вводе
	if source == sourcePrompt {
		confirm, err := c.io.ReadPassword("Confirm password: ")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}
	}

	req := pkgapi.RegisterRequest{
		Email:    email,
		Username: username,
		Password: password,
	}
	if wallet != "" {
		req.WalletAddress = &wallet
	}
	if err := validation.ValidateRegistration(req); err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("Registering user...")

	user, err := c.session.Signup(ctx, req)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("User ID: %s\n", user.ID)
	c.io.Printf("Username: %s\n", user.Username)
	c.io.Printf("Role: %s\n", user.Role)
	c.io.Println()
	c.io.Println("You are now signed in.")

	return nil
}
