package cli

import (
	"github.com/spf13/cobra"

	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driving"
	"github.com/BruceY-rgb/bank-kyc/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services wired in by main before Execute.
var (
	dossierService   driving.DossierService
	documentService  driving.DocumentService
	scanOrchestrator driving.ScanOrchestrator
	settingsService  driving.SettingsService

	// agentBuilder creates a chat session for a dossier. Building the
	// session validates the LLM configuration, so it runs lazily when
	// the chat actually starts.
	agentBuilder func(dossierID string) (driving.AgentService, error)

	// storagePath is the catalogue database location, shown by status.
	storagePath string
)

// verbose enables debug logging.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "kyc",
	Short: "Manage KYC document drop directories",
	Long: `kyc catalogues the customer documents dropped into per-client
directories, keeps the catalogue current as files arrive and leave, and
answers questions about a dossier through a chat assistant or an MCP
server.

Files on disk are never modified or moved.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

// Config carries the wired services from main.
type Config struct {
	Dossier      driving.DossierService
	Document     driving.DocumentService
	Scan         driving.ScanOrchestrator
	Settings     driving.SettingsService
	AgentBuilder func(dossierID string) (driving.AgentService, error)
	StoragePath  string
}

// SetServices installs the service implementations used by the commands.
func SetServices(cfg *Config) {
	if cfg == nil {
		return
	}
	dossierService = cfg.Dossier
	documentService = cfg.Document
	scanOrchestrator = cfg.Scan
	settingsService = cfg.Settings
	agentBuilder = cfg.AgentBuilder
	storagePath = cfg.StoragePath
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
