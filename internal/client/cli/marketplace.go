package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	pkgapi "github.com/iudanet/marketdash/pkg/api"
)

func (c *Cli) runNFTs(ctx context.Context, args []string) error {
	sub, args := subcommand(args, "list")
	switch sub {
	case "list":
		return c.listNFTs(ctx, args)
	case "get":
		id, err := requireArg(args, "NFT ID")
		if err != nil {
			return err
		}
		nft, err := check(c.client.GetNFT(ctx, id), "failed to get NFT")
		if err != nil {
			return err
		}
		c.printNFT(&nft)
		return nil
	case "delete":
		id, err := requireArg(args, "NFT ID")
		if err != nil {
			return err
		}
		if _, err := check(c.client.DeleteNFT(ctx, id), "failed to delete NFT"); err != nil {
			return err
		}
		c.io.Printf("✓ NFT %s deleted\n", id)
		return nil
	default:
		return fmt.Errorf("%w: nfts %s", ErrUnknownCommand, sub)
	}
}

func (c *Cli) listNFTs(ctx context.Context, args []string) error {
	var filter pkgapi.NFTFilter
	fs := newFlagSet("nfts list")
	intFlag(fs, "page", "page number", &filter.Page)
	intFlag(fs, "limit", "page size", &filter.Limit)
	stringFlag(fs, "category", "category", &filter.Category)
	floatFlag(fs, "min-price", "minimum price", &filter.MinPrice)
	floatFlag(fs, "max-price", "maximum price", &filter.MaxPrice)
	boolFlag(fs, "listed", "listed for sale", &filter.IsListed)
	stringFlag(fs, "creator", "creator ID", &filter.CreatorID)
	stringFlag(fs, "owner", "owner ID", &filter.OwnerID)
	stringFlag(fs, "collection", "collection ID", &filter.CollectionID)
	stringFlag(fs, "search", "search text", &filter.Search)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid nfts arguments: %w", err)
	}

	page, err := check(c.client.ListNFTs(ctx, &filter), "failed to list NFTs")
	if err != nil {
		return err
	}

	if len(page.Items) == 0 {
		c.io.Println("No NFTs found.")
		return nil
	}

	w := c.table()
	_, _ = fmt.Fprintln(w, "ID\tNAME\tPRICE\tCATEGORY\tLISTED\tOWNER")
	for _, nft := range page.Items {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\t%s\n",
			nft.ID, nft.Name, formatOptionalAmount(nft.Price), nft.Category, nft.IsListed, nft.OwnerID)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	c.printPage(page.Total, page.Page, len(page.Items))
	return nil
}

func (c *Cli) printNFT(nft *pkgapi.NFT) {
	c.io.Printf("ID: %s\n", nft.ID)
	c.io.Printf("Name: %s\n", nft.Name)
	if nft.Description != "" {
		c.io.Printf("Description: %s\n", nft.Description)
	}
	c.io.Printf("Price: %s\n", formatOptionalAmount(nft.Price))
	c.io.Printf("Category: %s\n", nft.Category)
	c.io.Printf("Listed: %t\n", nft.IsListed)
	c.io.Printf("Creator: %s\n", nft.CreatorID)
	c.io.Printf("Owner: %s\n", nft.OwnerID)
	c.io.Printf("Collection: %s\n", formatOptional(nft.CollectionID))
	if len(nft.Attributes) > 0 {
		c.io.Printf("Attributes: %s\n", nft.Attributes)
	}
	c.io.Printf("Created: %s\n", nft.CreatedAt.Format(time.RFC3339))
}

func (c *Cli) runCollections(ctx context.Context, args []string) error {
	sub, args := subcommand(args, "list")
	switch sub {
	case "list":
		var filter pkgapi.CollectionFilter
		fs := newFlagSet("collections list")
		intFlag(fs, "page", "page number", &filter.Page)
		intFlag(fs, "limit", "page size", &filter.Limit)
		stringFlag(fs, "creator", "creator ID", &filter.CreatorID)
		stringFlag(fs, "query", "search text", &filter.Query)
		if err := fs.Parse(args); err != nil {
			return fmt.Errorf("invalid collections arguments: %w", err)
		}

		page, err := check(c.client.ListCollections(ctx, &filter), "failed to list collections")
		if err != nil {
			return err
		}
		if len(page.Items) == 0 {
			c.io.Println("No collections found.")
			return nil
		}

		w := c.table()
		_, _ = fmt.Fprintln(w, "ID\tNAME\tCREATOR\tCREATED")
		for _, col := range page.Items {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				col.ID, col.Name, col.CreatorID, col.CreatedAt.Format(time.DateOnly))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		c.printPage(page.Total, page.Page, len(page.Items))
		return nil
	case "get":
		id, err := requireArg(args, "collection ID")
		if err != nil {
			return err
		}
		col, err := check(c.client.GetCollection(ctx, id), "failed to get collection")
		if err != nil {
			return err
		}
		c.io.Printf("ID: %s\n", col.ID)
		c.io.Printf("Name: %s\n", col.Name)
		if col.Description != "" {
			c.io.Printf("Description: %s\n", col.Description)
		}
		c.io.Printf("Creator: %s\n", col.CreatorID)
		c.io.Printf("Created: %s\n", col.CreatedAt.Format(time.RFC3339))
		return nil
	case "delete":
		id, err := requireArg(args, "collection ID")
		if err != nil {
			return err
		}
		if _, err := check(c.client.DeleteCollection(ctx, id), "failed to delete collection"); err != nil {
			return err
		}
		c.io.Printf("✓ Collection %s deleted\n", id)
		return nil
	default:
		return fmt.Errorf("%w: collections %s", ErrUnknownCommand, sub)
	}
}

func (c *Cli) runAuctions(ctx context.Context, args []string) error {
	sub, args := subcommand(args, "list")
	if sub != "list" {
		return fmt.Errorf("%w: auctions %s", ErrUnknownCommand, sub)
	}

	var filter pkgapi.AuctionFilter
	fs := newFlagSet("auctions list")
	intFlag(fs, "page", "page number", &filter.Page)
	intFlag(fs, "limit", "page size", &filter.Limit)
	boolFlag(fs, "active", "only active auctions", &filter.IsActive)
	stringFlag(fs, "creator", "creator ID", &filter.CreatorID)
	stringFlag(fs, "category", "category", &filter.Category)
	floatFlag(fs, "min-price", "minimum price", &filter.MinPrice)
	floatFlag(fs, "max-price", "maximum price", &filter.MaxPrice)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid auctions arguments: %w", err)
	}

	page, err := check(c.client.ListAuctions(ctx, &filter), "failed to list auctions")
	if err != nil {
		return err
	}
	if len(page.Items) == 0 {
		c.io.Println("No auctions found.")
		return nil
	}

	w := c.table()
	_, _ = fmt.Fprintln(w, "ID\tNFT\tSTART PRICE\tCURRENT BID\tACTIVE\tENDS")
	for _, a := range page.Items {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\t%s\n",
			a.ID, a.NFTID, formatAmount(a.StartingPrice), formatOptionalAmount(a.CurrentBid),
			a.IsActive, a.EndsAt.Format(time.RFC3339))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	c.printPage(page.Total, page.Page, len(page.Items))
	return nil
}

func (c *Cli) runBids(ctx context.Context, args []string) error {
	sub, args := subcommand(args, "list")
	switch sub {
	case "list":
		auctionID, err := requireArg(args, "auction ID")
		if err != nil {
			return err
		}
		bids, err := check(c.client.ListBids(ctx, auctionID), "failed to list bids")
		if err != nil {
			return err
		}
		if len(bids) == 0 {
			c.io.Println("No bids yet.")
			return nil
		}

		w := c.table()
		_, _ = fmt.Fprintln(w, "ID\tBIDDER\tAMOUNT\tPLACED")
		for _, b := range bids {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				b.ID, b.BidderID, formatAmount(b.Amount), b.CreatedAt.Format(time.RFC3339))
		}
		return w.Flush()
	case "place":
		if len(args) < 2 {
			return fmt.Errorf("usage: marketdash bids place AUCTION_ID AMOUNT")
		}
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil || amount <= 0 {
			return fmt.Errorf("invalid bid amount %q", args[1])
		}
		bid, err := check(c.client.PlaceBid(ctx, args[0], pkgapi.PlaceBidRequest{Amount: amount}), "failed to place bid")
		if err != nil {
			return err
		}
		c.io.Println("✓ Bid placed!")
		c.io.Printf("Bid ID: %s\n", bid.ID)
		c.io.Printf("Amount: %s\n", formatAmount(bid.Amount))
		return nil
	default:
		return fmt.Errorf("%w: bids %s", ErrUnknownCommand, sub)
	}
}

func (c *Cli) runTransactions(ctx context.Context, args []string) error {
	sub, args := subcommand(args, "list")
	if sub != "list" {
		return fmt.Errorf("%w: transactions %s", ErrUnknownCommand, sub)
	}

	var filter pkgapi.TransactionFilter
	fs := newFlagSet("transactions list")
	intFlag(fs, "page", "page number", &filter.Page)
	intFlag(fs, "limit", "page size", &filter.Limit)
	stringFlag(fs, "user", "user ID", &filter.UserID)
	stringFlag(fs, "nft", "NFT ID", &filter.NFTID)
	stringFlag(fs, "type", "SALE, MINT, TRANSFER or BID", &filter.Type)
	floatFlag(fs, "min-amount", "minimum amount", &filter.MinAmount)
	floatFlag(fs, "max-amount", "maximum amount", &filter.MaxAmount)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid transactions arguments: %w", err)
	}

	page, err := check(c.client.ListTransactions(ctx, &filter), "failed to list transactions")
	if err != nil {
		return err
	}
	if len(page.Items) == 0 {
		c.io.Println("No transactions found.")
		return nil
	}

	w := c.table()
	_, _ = fmt.Fprintln(w, "ID\tTYPE\tNFT\tAMOUNT\tFROM\tTO\tDATE")
	for _, tx := range page.Items {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID, tx.Type, tx.NFTID, formatAmount(tx.Amount),
			formatOptional(tx.FromID), formatOptional(tx.ToID), tx.CreatedAt.Format(time.RFC3339))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	c.printPage(page.Total, page.Page, len(page.Items))
	return nil
}

func (c *Cli) printPage(total, page, shown int) {
	c.io.Println()
	c.io.Printf("Showing %d of %d (page %d)\n", shown, total, page)
}
