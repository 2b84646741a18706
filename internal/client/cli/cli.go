package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/iudanet/marketdash/internal/client/api"
	"github.com/iudanet/marketdash/internal/client/auth"
	"github.com/iudanet/marketdash/internal/client/iocli"
)

// PasswordEnv - переменная окружения с паролем, наивысший приоритет
const PasswordEnv = "MARKETDASH_PASSWORD"

var (
	// ErrUnknownCommand возвращается для неизвестной команды
	ErrUnknownCommand = errors.New("unknown command")
	// ErrNotAuthenticated возвращается, если команда требует входа
	ErrNotAuthenticated = errors.New("not authenticated. Please run 'marketdash login' first")
	// ErrAccessDenied возвращается, если у пользователя нет нужной роли
	ErrAccessDenied = errors.New("access denied")
)

// Passwords содержит пароль из флагов командной строки
type Passwords struct {
	FromFile string
	FromArgs string
}

// passwordSource описывает, откуда получен пароль
type passwordSource int

const (
	sourceEnv passwordSource = iota
	sourceFile
	sourceArgs
	sourcePrompt
)

// Cli выполняет команды клиента поверх менеджера сессии и API клиента
type Cli struct {
	io        iocli.IO
	client    *api.Client
	session   *auth.Manager
	tokens    *auth.TokenStore
	passwords Passwords
}

// New создает CLI
func New(io iocli.IO, client *api.Client, session *auth.Manager, tokens *auth.TokenStore, passwords Passwords) *Cli {
	return &Cli{
		io:        io,
		client:    client,
		session:   session,
		tokens:    tokens,
		passwords: passwords,
	}
}

// Navigator возвращает навигатор, который печатает маршрут перехода
func Navigator(io iocli.IO) auth.Navigator {
	return auth.NavigatorFunc(func(route string) {
		io.Printf("→ %s\n", route)
	})
}

// getPassword retrieves password from various sources with priority:
// 1. Environment variable MARKETDASH_PASSWORD
// 2. File specified in --password-file
// 3. Command-line parameter --password
// 4. Interactive prompt (fallback)
func (c *Cli) getPassword(prompt string) (string, passwordSource, error) {
	// Priority 1: Environment variable
	if envPassword := os.Getenv(PasswordEnv); envPassword != "" {
		return envPassword, sourceEnv, nil
	}

	// Priority 2: File
	if c.passwords.FromFile != "" {
		content, err := os.ReadFile(c.passwords.FromFile)
		if err != nil {
			return "", sourceFile, fmt.Errorf("failed to read password file: %w", err)
		}
		// Убираем trailing newline/whitespace
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", sourceFile, fmt.Errorf("password file is empty")
		}
		return password, sourceFile, nil
	}

	// Priority 3: CLI parameter
	if c.passwords.FromArgs != "" {
		return c.passwords.FromArgs, sourceArgs, nil
	}

	// Priority 4: Interactive prompt (fallback)
	password, err := c.io.ReadPassword(prompt)
	if err != nil {
		return "", sourcePrompt, fmt.Errorf("failed to read password from stdin: %w", err)
	}
	if password == "" {
		return "", sourcePrompt, fmt.Errorf("password cannot be empty")
	}

	return password, sourcePrompt, nil
}

// PrintUsage печатает справку по командам
func PrintUsage(io iocli.IO) {
	io.Println("MarketDash Client")
	io.Println()
	io.Println("Usage:")
	io.Println("  marketdash [OPTIONS] COMMAND [ARGS]")
	io.Println()
	io.Println("Options:")
	io.Println("  --version               Show version information")
	io.Println("  --server URL            API server URL (default: $MARKETDASH_API_URL or http://localhost:3001)")
	io.Println("  --db PATH               Path to local session database (default: marketdash-client.db)")
	io.Println("  --env PATH              Path to .env file (default: ./.env if present)")
	io.Println("  --log-level LEVEL       Log level: debug, info, warn, error")
	io.Println("  --password PASSWORD     Password (not recommended, use env var or file)")
	io.Println("  --password-file PATH    Path to file containing password")
	io.Println()
	io.Println("Password Priority (highest to lowest):")
	io.Println("  1. MARKETDASH_PASSWORD environment variable")
	io.Println("  2. --password-file (file path)")
	io.Println("  3. --password (command line)")
	io.Println("  4. Interactive prompt (fallback)")
	io.Println()
	io.Println("Session commands:")
	io.Println("  register                          Create an account and sign in")
	io.Println("  login [--remember] [LOGIN]        Sign in with email or username")
	io.Println("  logout                            Sign out and clear the local session")
	io.Println("  status                            Check the session with the server")
	io.Println("  whoami                            Show the last signed in user (offline)")
	io.Println("  refresh                           Re-check the session, refreshing tokens if needed")
	io.Println()
	io.Println("Marketplace commands:")
	io.Println("  nfts [list|get ID|delete ID]      Browse NFTs (list flags: --page --limit --category")
	io.Println("                                    --min-price --max-price --listed --creator --owner")
	io.Println("                                    --collection --search)")
	io.Println("  collections [list|get ID|delete ID]")
	io.Println("                                    Browse collections (--page --limit --creator --query)")
	io.Println("  auctions [list]                   Browse auctions (--page --limit --active --creator")
	io.Println("                                    --category --min-price --max-price)")
	io.Println("  bids list AUCTION_ID              Show bids of an auction")
	io.Println("  bids place AUCTION_ID AMOUNT      Place a bid")
	io.Println("  transactions [list]               Browse transactions (--page --limit --user --nft")
	io.Println("                                    --type --min-amount --max-amount)")
	io.Println("  users [list|get ID|delete ID]     Manage users (--page --limit --search --role --verified)")
	io.Println("  admin [dashboard|settings|delete-setting KEY]")
	io.Println("                                    Administration, requires ADMIN role")
	io.Println()
	io.Println("Examples:")
	io.Println("  marketdash register")
	io.Println("  marketdash login --remember alice")
	io.Println("  marketdash nfts list --category art --listed true --limit 10")
	io.Println("  marketdash --server https://api.example.com status")
}
