package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/marketdash/internal/client/auth"
	"github.com/iudanet/marketdash/internal/client/storage"
	"github.com/iudanet/marketdash/internal/models"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Session Status ===")
	c.io.Println()

	c.session.Start(ctx)
	c.printSession(ctx)

	return nil
}

func (c *Cli) runRefresh(ctx context.Context) error {
	c.io.Println("=== Refresh Session ===")
	c.io.Println()

	c.session.RefreshAuth(ctx)
	c.printSession(ctx)

	if !c.session.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

// runWhoami показывает последнего пользователя без обращения к серверу
func (c *Cli) runWhoami(ctx context.Context) error {
	user, savedAt, err := c.tokens.LoadUser(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			c.io.Println("Status: Not signed in")
			return nil
		}
		return fmt.Errorf("failed to load saved user: %w", err)
	}

	c.printUser(user)
	if !savedAt.IsZero() {
		c.io.Printf("Saved at: %s\n", savedAt.Local().Format(time.RFC3339))
	}
	return nil
}

func (c *Cli) printSession(ctx context.Context) {
	c.io.Printf("Server: %s\n", c.client.BaseURL())
	c.io.Printf("State: %s\n", c.session.State())

	user := c.session.User()
	if user == nil {
		c.io.Println()
		c.io.Println("Please run 'marketdash login' to sign in.")
		return
	}

	c.io.Println("Status: ✓ Authenticated")
	c.printUser(user)
	c.printTokenExpiry(ctx)
	if c.session.CanAccess(auth.RouteAdmin) {
		c.io.Println("Admin panel: available")
	}
}

func (c *Cli) printUser(user *models.User) {
	c.io.Printf("User ID: %s\n", user.ID)
	c.io.Printf("Username: %s\n", user.Username)
	c.io.Printf("Email: %s\n", user.Email)
	c.io.Printf("Role: %s\n", user.Role)
	if user.WalletAddress != nil {
		c.io.Printf("Wallet: %s\n", *user.WalletAddress)
	}
}

// printTokenExpiry печатает срок действия access token, если он известен
func (c *Cli) printTokenExpiry(ctx context.Context) {
	token, err := c.tokens.Get(ctx, storage.TokenAccess)
	if err != nil {
		return
	}
	exp, ok := auth.TokenExpiry(token)
	if !ok {
		return
	}
	remaining := time.Until(exp).Round(time.Second)
	if remaining <= 0 {
		c.io.Println("Access token: expired")
		return
	}
	c.io.Printf("Access token expires in: %s\n", remaining)
}
