package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/thoughtwall/thoughtwall/internal/auth"
	"github.com/thoughtwall/thoughtwall/internal/client"
	"github.com/thoughtwall/thoughtwall/internal/config"
	httpapp "github.com/thoughtwall/thoughtwall/internal/http"
	"github.com/thoughtwall/thoughtwall/internal/rate"
	"github.com/thoughtwall/thoughtwall/internal/store/sqlite"
)

// CLIConfig holds the CLI client configuration persisted to disk.
type CLIConfig struct {
	BaseURL  string `json:"base_url"`
	Username string `json:"username"`
	Email    string `json:"email"`
	UserID   string `json:"user_id"`
	Token    string `json:"token"`
}

func main() {
	if len(os.Args) < 2 {
		runServer()
		return
	}

	cmd := os.Args[1]

	if cmd == "-h" || cmd == "--help" || cmd == "help" {
		printUsage()
		return
	}

	if cmd == "-v" || cmd == "--version" || cmd == "version" {
		fmt.Println("thoughtwall v0.1.0")
		return
	}

	if strings.HasPrefix(cmd, "-") {
		runServer()
		return
	}

	args := os.Args[2:]

	switch cmd {
	case "server", "serve":
		runServer()
	case "register":
		cmdRegister(args)
	case "login":
		cmdLogin(args)
	case "post":
		cmdPost(args)
	case "like":
		cmdLike(args)
	case "read", "list":
		cmdRead(args)
	case "delete", "rm":
		cmdDelete(args)
	case "whoami", "status":
		cmdStatus(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`thoughtwall - A wall of short happy thoughts

Usage: thoughtwall <command> [options]

Quick Start:
  thoughtwall register --username alice --email alice@example.com
  thoughtwall post --message "Hello world, this is great"

Client Commands:
  register            Create an account and save the access token
  login               Log in (rotates the access token)
  post                Post a new thought
  like                Like a thought by id
  read                Read thoughts from the wall
  delete              Delete your own thought
  whoami              Show current config and token status

Server:
  server              Start the Thoughtwall server (default if no command)

Examples:
  thoughtwall post --message "Coffee is wonderful" --category food
  thoughtwall read --sort hearts --limit 10
  thoughtwall read --category food
  thoughtwall like --id 3f1a...
  thoughtwall delete --id 3f1a...

Environment Variables (server):
  THOUGHTWALL_ADDR            Listen address (default: :8080)
  THOUGHTWALL_DB              Database path (default: thoughtwall.db)
  THOUGHTWALL_ADMIN_SECRET    Admin API secret
  THOUGHTWALL_RL_THOUGHT      Thoughts per minute per IP (default: 30)
  THOUGHTWALL_RL_SIGNUP       Signups per minute per IP (default: 10)
  THOUGHTWALL_RL_LOGIN        Logins per minute per IP (default: 20)`)
}

// ============================================================================
// SERVER
// ============================================================================

func runServer() {
	cfg := config.Load()

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer store.Close()

	limiter := rate.NewMemory()
	authSvc := auth.NewService(store)

	server := httpapp.NewServer(store, authSvc, limiter, cfg)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("thoughtwall listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)
}

// ============================================================================
// CLIENT COMMANDS
// ============================================================================

func cmdRegister(args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "Username (required, 3-20 chars)")
	email := fs.String("email", "", "Email address (required)")
	password := fs.String("password", "", "Password (prompted via env THOUGHTWALL_PASSWORD if empty)")
	url := fs.String("url", "http://localhost:8080", "Thoughtwall server URL")
	fs.Parse(args)

	if *username == "" || *email == "" {
		fmt.Fprintln(os.Stderr, "Error: --username and --email are required")
		fmt.Fprintln(os.Stderr, "Usage: thoughtwall register --username <name> --email <addr>")
		os.Exit(1)
	}

	pass := *password
	if pass == "" {
		pass = os.Getenv("THOUGHTWALL_PASSWORD")
	}
	if pass == "" {
		fmt.Fprintln(os.Stderr, "Error: provide --password or set THOUGHTWALL_PASSWORD")
		os.Exit(1)
	}

	c := client.New(strings.TrimSuffix(*url, "/"))
	err := c.Register(*username, *email, pass)
	if errors.Is(err, client.ErrAlreadyRegistered) {
		fmt.Fprintln(os.Stderr, "Error: username or email already taken")
		fmt.Fprintln(os.Stderr, "If this is your account, run 'thoughtwall login'")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := CLIConfig{
		BaseURL:  c.BaseURL,
		Username: c.Username,
		Email:    strings.ToLower(strings.TrimSpace(*email)),
		UserID:   c.UserID,
		Token:    c.Token,
	}
	if err := saveCLIConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Registered '%s'\n", cfg.Username)
	fmt.Printf("  Config: %s\n", cliConfigPath())
	fmt.Println("\nReady to post! Example:")
	fmt.Println("  thoughtwall post --message \"My first happy thought\"")
}

func cmdLogin(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "Email address (defaults to saved email)")
	password := fs.String("password", "", "Password (or env THOUGHTWALL_PASSWORD)")
	url := fs.String("url", "", "Thoughtwall server URL (defaults to saved URL)")
	fs.Parse(args)

	cfg, _ := loadCLIConfig()
	if *email != "" {
		cfg.Email = strings.ToLower(strings.TrimSpace(*email))
	}
	if *url != "" {
		cfg.BaseURL = strings.TrimSuffix(*url, "/")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Email == "" {
		fmt.Fprintln(os.Stderr, "Error: --email is required for first login")
		os.Exit(1)
	}

	pass := *password
	if pass == "" {
		pass = os.Getenv("THOUGHTWALL_PASSWORD")
	}
	if pass == "" {
		fmt.Fprintln(os.Stderr, "Error: provide --password or set THOUGHTWALL_PASSWORD")
		os.Exit(1)
	}

	c := client.New(cfg.BaseURL)
	if err := c.Login(cfg.Email, pass); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Fprintln(os.Stderr, "Error: invalid email or password")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	cfg.Username = c.Username
	cfg.UserID = c.UserID
	cfg.Token = c.Token
	if err := saveCLIConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Logged in as '%s'\n", cfg.Username)
}

func cmdPost(args []string) {
	fs := flag.NewFlagSet("post", flag.ExitOnError)
	message := fs.String("message", "", "Thought text (required, 5-140 chars)")
	category := fs.String("category", "", "Optional category")
	fs.Parse(args)

	if *message == "" {
		fmt.Fprintln(os.Stderr, "Error: --message is required")
		os.Exit(1)
	}

	c, err := loadAuthenticatedClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	thought, err := c.PostThought(*message, *category)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Posted: %s\n", thought.Message)
	fmt.Printf("  ID: %s\n", thought.ID)
}

func cmdLike(args []string) {
	fs := flag.NewFlagSet("like", flag.ExitOnError)
	id := fs.String("id", "", "Thought ID (required)")
	fs.Parse(args)

	if *id == "" {
		fmt.Fprintln(os.Stderr, "Error: --id is required")
		fmt.Fprintln(os.Stderr, "Usage: thoughtwall like --id <thought-id>")
		os.Exit(1)
	}

	cfg, _ := loadCLIConfig()
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	c := client.New(baseURL)
	thought, err := c.Like(*id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Liked thought %s (%d hearts)\n", thought.ID, thought.Hearts)
}

func cmdRead(args []string) {
	fs := flag.NewFlagSet("read", flag.ExitOnError)
	sort := fs.String("sort", "date", "Sort: date, hearts")
	category := fs.String("category", "", "Filter by category")
	page := fs.Int("page", 1, "Page number")
	limit := fs.Int("limit", 10, "Thoughts per page")
	id := fs.String("id", "", "Get a specific thought")
	fs.Parse(args)

	cfg, _ := loadCLIConfig()
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	c := client.New(baseURL)

	if *id != "" {
		thought, err := c.GetThought(*id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\n%s\n", thought.Message)
		fmt.Printf("  ♥ %d | %s | %s\n", thought.Hearts, displayAuthor(thought.Username), thought.CreatedAt.Format(time.RFC822))
		if thought.Category != "" {
			fmt.Printf("  #%s\n", thought.Category)
		}
		return
	}

	result, err := c.GetThoughts(*category, *sort, *page, *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n💭 Thoughtwall (%s, page %d/%d, %d total)\n\n", *sort, result.Page, result.TotalPages, result.Total)
	for i, t := range result.Results {
		fmt.Printf("%d. %s\n", (result.Page-1)*result.Limit+i+1, t.Message)
		line := fmt.Sprintf("   ♥ %d | %s | %s", t.Hearts, displayAuthor(t.Username), t.ID)
		if t.Category != "" {
			line += " | #" + t.Category
		}
		fmt.Println(line + "\n")
	}
}

func cmdDelete(args []string) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "Thought ID to delete")
	fs.Parse(args)

	if *id == "" {
		fmt.Fprintln(os.Stderr, "Error: --id is required")
		fmt.Fprintln(os.Stderr, "Usage: thoughtwall delete --id <thought-id>")
		os.Exit(1)
	}

	c, err := loadAuthenticatedClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	deleted, err := c.DeleteThought(*id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Deleted: %s\n", deleted.Message)
}

func cmdStatus(args []string) {
	cfg, err := loadCLIConfig()
	if err != nil {
		fmt.Println("Status: Not logged in")
		fmt.Println("\nRun: thoughtwall register --username <name> --email <addr>")
		return
	}

	fmt.Printf("User:   %s\n", cfg.Username)
	fmt.Printf("Email:  %s\n", cfg.Email)
	fmt.Printf("Server: %s\n", cfg.BaseURL)

	if cfg.Token == "" {
		fmt.Println("Token:  Not authenticated")
		fmt.Println("\nRun: thoughtwall login")
	} else {
		fmt.Printf("Token:  %s...\n", cfg.Token[:8])
	}
}

func displayAuthor(username string) string {
	if username == "" {
		return "anonymous"
	}
	return username
}

// ============================================================================
// HELPERS
// ============================================================================

func cliConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".thoughtwall", "config.json")
}

func loadCLIConfig() (CLIConfig, error) {
	data, err := os.ReadFile(cliConfigPath())
	if err != nil {
		return CLIConfig{}, errors.New("not logged in")
	}
	var cfg CLIConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return CLIConfig{}, err
	}
	return cfg, nil
}

func saveCLIConfig(cfg CLIConfig) error {
	path := cliConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, _ := json.MarshalIndent(cfg, "", "  ")
	return os.WriteFile(path, data, 0600)
}

func loadAuthenticatedClient() (*client.Client, error) {
	cfg, err := loadCLIConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Token == "" {
		return nil, errors.New("not authenticated - run 'thoughtwall login'")
	}

	c := client.New(cfg.BaseURL)
	c.Token = cfg.Token
	c.UserID = cfg.UserID
	c.Username = cfg.Username
	return c, nil
}
