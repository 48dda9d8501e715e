package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/docchat-cli/internal/adapters/api"
	"github.com/kamal-hamza/docchat-cli/internal/adapters/credentials"
	"github.com/kamal-hamza/docchat-cli/internal/core/domain"
	"github.com/kamal-hamza/docchat-cli/internal/core/services"
	"github.com/kamal-hamza/docchat-cli/pkg/config"
	"github.com/kamal-hamza/docchat-cli/pkg/logging"
	"github.com/kamal-hamza/docchat-cli/pkg/ui"
)

var (
	// Global config and logging
	appConfig *config.Config
	logger    *slog.Logger
	closeLog  func() error

	// Adapters
	credStore      *credentials.Store
	registryClient *api.Client
	chatClient     *api.Client

	// Shared state
	notifier  *services.Notifier
	selection *domain.SelectionSet

	// Services
	authService     *services.AuthService
	registryService *services.RegistryService
	sessionService  *services.SessionService
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docchat",
	Short: "DocChat - Ask questions about your documents",
	Long: ui.StyleTitle.Render("DocChat") + " - Document Q&A Client\n\n" +
		"Upload documents to a DocChat server, scope questions to a\n" +
		"selection of them, and get answers with source citations.",
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	defer func() {
		if closeLog != nil {
			_ = closeLog()
		}
	}()
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(workspaceCmd)
	rootCmd.AddCommand(assetsCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	// Version needs none of the stack
	if cmd.Name() == "version" {
		return nil
	}

	cfgPath, err := config.DefaultPath()
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}
	appConfig, err = config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ui.SetTheme(appConfig.ColorTheme)

	// The terminal belongs to the TUI, so logs go to a file.
	logger, closeLog, err = logging.NewFileLogger(logFilePath(), appConfig.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	tokenPath, err := credentials.DefaultPath()
	if err != nil {
		return fmt.Errorf("failed to resolve token path: %w", err)
	}
	credStore = credentials.NewStore(tokenPath)

	// Chat answers can take a while; registry calls should not.
	registryClient = api.New(appConfig.APIBaseURL, time.Duration(appConfig.RequestTimeoutSeconds)*time.Second, logger)
	chatClient = api.New(appConfig.APIBaseURL, time.Duration(appConfig.ChatTimeoutSeconds)*time.Second, logger)

	notifier = services.NewNotifier()
	selection = domain.NewSelectionSet()

	authService = services.NewAuthService(registryClient, credStore)
	registryService = services.NewRegistryService(registryClient, authService, notifier, selection, &terminalConfirmer{})
	sessionService = services.NewSessionService(chatClient, authService, notifier, selection)

	return nil
}

// logFilePath puts the log next to the token under the data directory.
func logFilePath() string {
	dataPath, err := credentials.DefaultPath()
	if err != nil {
		return filepath.Join(os.TempDir(), "docchat.log")
	}
	return filepath.Join(filepath.Dir(dataPath), "docchat.log")
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}

// requireLogin aborts commands that cannot run without a credential.
func requireLogin() {
	if !authService.HasCredential() {
		fmt.Println(ui.FormatError(services.MsgLoginRequired))
		os.Exit(1)
	}
}
