package cli

import (
	"context"
	"fmt"
)

// Run выполняет команду с аргументами
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx, args)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "whoami":
		return c.runWhoami(ctx)
	case "refresh":
		return c.runRefresh(ctx)
	case "nfts":
		return c.runNFTs(ctx, args)
	case "collections":
		return c.runCollections(ctx, args)
	case "auctions":
		return c.runAuctions(ctx, args)
	case "bids":
		return c.runBids(ctx, args)
	case "transactions":
		return c.runTransactions(ctx, args)
	case "users":
		return c.runUsers(ctx, args)
	case "admin":
		return c.runAdmin(ctx, args)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}
