package cli

import (
	"context"
)

func (c *Cli) runLogout(ctx context.Context) error {
	c.io.Println("=== Logout ===")
	c.io.Println()

	c.session.Logout(ctx)

	c.io.Println("✓ Logout successful!")
	c.io.Println("Local session data has been cleared.")

	return nil
}
