package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshdurbin/sms-link-shortener/internal/config"
	"github.com/joshdurbin/sms-link-shortener/internal/registry"
	"github.com/joshdurbin/sms-link-shortener/internal/store"
	"github.com/joshdurbin/sms-link-shortener/internal/store/memory"
	"github.com/joshdurbin/sms-link-shortener/internal/store/sqlite"
	"github.com/joshdurbin/sms-link-shortener/internal/token"
	"github.com/joshdurbin/sms-link-shortener/internal/transport/client"
	httpTransport "github.com/joshdurbin/sms-link-shortener/internal/transport/http"
)

var rootCmd = &cobra.Command{
	Use:   "sms-link-shortener",
	Short: "A short link service for SMS deep links written in Go",
	Long:  "A service that issues short, collision-free identifiers resolving to sms: deep links, with atomic click accounting and analytics",
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the SMS link shortener server",
	RunE:  runServer,
}

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for interacting with the server",
}

var createCmd = &cobra.Command{
	Use:   "create [PHONE] [MESSAGE]",
	Short: "Create a short SMS link",
	Args:  cobra.ExactArgs(2),
	RunE:  runCreateLink,
}

var getCmd = &cobra.Command{
	Use:   "get [SHORT_ID]",
	Short: "Get the analytics snapshot for a short link",
	Args:  cobra.ExactArgs(1),
	RunE:  runGetLink,
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [SHORT_ID]",
	Short: "Resolve a short link to its sms: deep link (counts a click)",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolveLink,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the server status",
	RunE:  runStatus,
}

func init() {
	// Server command flags
	serverCmd.Flags().StringP("port", "p", "8080", "Server port")
	serverCmd.Flags().String("base-url", "http://localhost:8080", "Externally visible base URL used to build short URLs")
	serverCmd.Flags().String("db-path", "links.db", "Database file path")
	serverCmd.Flags().Bool("in-memory", false, "Use the in-memory store instead of SQLite")

	// Registry configuration flags
	serverCmd.Flags().Int("min-phone-digits", 10, "Minimum number of digits a normalized phone number must contain")
	serverCmd.Flags().Int("max-generate-attempts", 10, "Maximum short id generation attempts before giving up")

	// Logging configuration flags
	serverCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging (HTTP requests/responses and error details)")

	// Client command flags
	clientCmd.PersistentFlags().StringP("server-url", "u", "http://localhost:8080", "Server URL")

	// Add subcommands
	clientCmd.AddCommand(createCmd, getCmd, resolveCmd, statusCmd)
	rootCmd.AddCommand(serverCmd, clientCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	// Get configuration from CLI flags
	port, _ := cmd.Flags().GetString("port")
	baseURL, _ := cmd.Flags().GetString("base-url")
	dbPath, _ := cmd.Flags().GetString("db-path")
	inMemory, _ := cmd.Flags().GetBool("in-memory")

	// Get registry configuration
	minPhoneDigits, _ := cmd.Flags().GetInt("min-phone-digits")
	maxGenerateAttempts, _ := cmd.Flags().GetInt("max-generate-attempts")

	// Get logging configuration
	verbose, _ := cmd.Flags().GetBool("verbose")

	registryConfig := registry.Config{
		MinPhoneDigits:      minPhoneDigits,
		MaxGenerateAttempts: maxGenerateAttempts,
	}

	// Create configuration
	cfg, err := config.New(port, baseURL, dbPath, inMemory, verbose, registryConfig)
	if err != nil {
		return fmt.Errorf("failed to create configuration: %w", err)
	}

	log.Printf("Starting SMS link shortener server with config: port=%s", cfg.Server.Port)

	// Initialize the link store
	var linkStore store.LinkStore
	if cfg.Database.InMemory {
		linkStore = memory.New()
		log.Printf("Using in-memory link store")
	} else {
		linkStore, err = sqlite.New(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		log.Printf("Using SQLite link store at %s", cfg.Database.Path)
	}
	defer func() {
		if err := linkStore.Close(); err != nil {
			log.Printf("Error closing link store: %v", err)
		}
	}()

	// Initialize the registry with a crypto-random identifier generator
	generator := token.NewRandomGenerator()
	linkRegistry := registry.NewLinkRegistry(linkStore, generator, cfg.Registry)

	// Create and start HTTP server
	server := httpTransport.NewServer(linkRegistry, linkStore, cfg.Server.Port, cfg.Server.BaseURL, cfg.Logging.Verbose)

	// Set up graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-sigChan:
		log.Printf("Received signal %v, shutting down gracefully...", sig)

		// Create shutdown context with timeout
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Shutdown server
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during server shutdown: %v", err)
		}
	}

	log.Println("Server stopped")
	return nil
}

func runCreateLink(cmd *cobra.Command, args []string) error {
	serverURL, _ := cmd.Flags().GetString("server-url")
	c := client.NewClient(serverURL)
	commands := client.NewCommands(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return commands.Create(ctx, args[0], args[1])
}

func runGetLink(cmd *cobra.Command, args []string) error {
	serverURL, _ := cmd.Flags().GetString("server-url")
	c := client.NewClient(serverURL)
	commands := client.NewCommands(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return commands.Get(ctx, args[0])
}

func runResolveLink(cmd *cobra.Command, args []string) error {
	serverURL, _ := cmd.Flags().GetString("server-url")
	c := client.NewClient(serverURL)
	commands := client.NewCommands(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return commands.Resolve(ctx, args[0])
}

func runStatus(cmd *cobra.Command, args []string) error {
	serverURL, _ := cmd.Flags().GetString("server-url")
	c := client.NewClient(serverURL)
	commands := client.NewCommands(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return commands.Status(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
