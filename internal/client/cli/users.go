package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/marketdash/internal/client/auth"
	pkgapi "github.com/iudanet/marketdash/pkg/api"
)

func (c *Cli) runUsers(ctx context.Context, args []string) error {
	sub, args := subcommand(args, "list")
	switch sub {
	case "list":
		var filter pkgapi.UserFilter
		fs := newFlagSet("users list")
		intFlag(fs, "page", "page number", &filter.Page)
		intFlag(fs, "limit", "page size", &filter.Limit)
		stringFlag(fs, "search", "search text", &filter.Search)
		stringFlag(fs, "role", "USER, ADMIN or MODERATOR", &filter.Role)
		boolFlag(fs, "verified", "only verified users", &filter.IsVerified)
		if err := fs.Parse(args); err != nil {
			return fmt.Errorf("invalid users arguments: %w", err)
		}
		if filter.Role != nil && !filter.Role.Valid() {
			return fmt.Errorf("invalid role %q", *filter.Role)
		}

		page, err := check(c.client.ListUsers(ctx, &filter), "failed to list users")
		if err != nil {
			return err
		}
		if len(page.Items) == 0 {
			c.io.Println("No users found.")
			return nil
		}

		w := c.table()
		_, _ = fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE\tVERIFIED\tCREATED")
		for _, u := range page.Items {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\t%s\n",
				u.ID, u.Username, u.Email, u.Role, u.IsVerified, u.CreatedAt.Format(time.DateOnly))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		c.printPage(page.Total, page.Page, len(page.Items))
		return nil
	case "get":
		id, err := requireArg(args, "user ID")
		if err != nil {
			return err
		}
		user, err := check(c.client.GetUser(ctx, id), "failed to get user")
		if err != nil {
			return err
		}
		c.printUser(&user)
		c.io.Printf("Active: %t\n", user.IsActive)
		c.io.Printf("Verified: %t\n", user.IsVerified)
		if user.LastLoginAt != nil {
			c.io.Printf("Last login: %s\n", user.LastLoginAt.Format(time.RFC3339))
		}
		return nil
	case "delete":
		id, err := requireArg(args, "user ID")
		if err != nil {
			return err
		}
		if _, err := check(c.client.DeleteUser(ctx, id), "failed to delete user"); err != nil {
			return err
		}
		c.io.Printf("✓ User %s deleted\n", id)
		return nil
	default:
		return fmt.Errorf("%w: users %s", ErrUnknownCommand, sub)
	}
}

// runAdmin проверяет сессию и роль перед обращением к административному API
func (c *Cli) runAdmin(ctx context.Context, args []string) error {
	c.session.Start(ctx)
	if !c.session.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	if !c.session.CanAccess(auth.RouteAdmin) {
		return fmt.Errorf("%w: admin role required", ErrAccessDenied)
	}

	sub, args := subcommand(args, "dashboard")
	switch sub {
	case "dashboard":
		stats, err := check(c.client.AdminDashboard(ctx), "failed to load dashboard")
		if err != nil {
			return err
		}
		c.io.Println("=== Admin Dashboard ===")
		c.io.Println()
		w := c.table()
		_, _ = fmt.Fprintf(w, "Users:\t%d (%d active)\n", stats.TotalUsers, stats.ActiveUsers)
		_, _ = fmt.Fprintf(w, "NFTs:\t%d\n", stats.TotalNFTs)
		_, _ = fmt.Fprintf(w, "Collections:\t%d\n", stats.TotalCollections)
		_, _ = fmt.Fprintf(w, "Active auctions:\t%d\n", stats.ActiveAuctions)
		_, _ = fmt.Fprintf(w, "Transactions:\t%d\n", stats.TotalTransactions)
		_, _ = fmt.Fprintf(w, "Volume:\t%s\n", formatAmount(stats.TotalVolume))
		return w.Flush()
	case "settings":
		settings, err := check(c.client.SystemSettings(ctx), "failed to load settings")
		if err != nil {
			return err
		}
		if len(settings) == 0 {
			c.io.Println("No settings.")
			return nil
		}
		w := c.table()
		_, _ = fmt.Fprintln(w, "KEY\tVALUE\tDESCRIPTION")
		for _, s := range settings {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", s.Key, s.Value, s.Description)
		}
		return w.Flush()
	case "delete-setting":
		key, err := requireArg(args, "setting key")
		if err != nil {
			return err
		}
		if _, err := check(c.client.DeleteSystemSetting(ctx, key), "failed to delete setting"); err != nil {
			return err
		}
		c.io.Printf("✓ Setting %s deleted\n", key)
		return nil
	default:
		return fmt.Errorf("%w: admin %s", ErrUnknownCommand, sub)
	}
}
