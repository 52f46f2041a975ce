// Command kyc manages KYC document drop directories: it catalogues the
// files clients drop into per-dossier directories and answers questions
// about them through a chat assistant or an MCP server.
package main

import (
	"fmt"
	"os"

	"github.com/BruceY-rgb/bank-kyc/internal/adapters/driven/ai"
	"github.com/BruceY-rgb/bank-kyc/internal/adapters/driven/config/file"
	"github.com/BruceY-rgb/bank-kyc/internal/adapters/driven/storage/sqlite"
	"github.com/BruceY-rgb/bank-kyc/internal/adapters/driving/cli"
	"github.com/BruceY-rgb/bank-kyc/internal/connectors/inbox"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driving"
	"github.com/BruceY-rgb/bank-kyc/internal/core/services"
	"github.com/BruceY-rgb/bank-kyc/internal/normalisers"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Empty paths fall back to ~/.kyc; the env vars exist for tests and
	// containerised deployments.
	configStore, err := file.NewConfigStore(os.Getenv("KYC_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	promptStore, err := file.NewPromptStore(os.Getenv("KYC_PROMPT_DIR"))
	if err != nil {
		return fmt.Errorf("opening prompt store: %w", err)
	}

	store, err := sqlite.NewStore(os.Getenv("KYC_DATA_DIR"))
	if err != nil {
		return fmt.Errorf("opening catalogue: %w", err)
	}
	defer store.Close()

	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	dossierService := services.NewDossierService(
		store.DossierStore(),
		store.ScanStateStore(),
		store.DocumentStore(),
	)

	documentService := services.NewDocumentService(
		store.DocumentStore(),
		store.DossierStore(),
		store.ExclusionStore(),
	)

	scanOrchestrator := services.NewScanOrchestrator(
		store.DossierStore(),
		store.ScanStateStore(),
		store.DocumentStore(),
		store.ExclusionStore(),
		inbox.NewFactory(settings.MaxFileBytes),
		normalisers.Defaults(),
	)

	// The chat session is built lazily so the LLM is only contacted when
	// a chat actually starts, with whatever settings are current then.
	agentBuilder := func(dossierID string) (driving.AgentService, error) {
		current, err := settingsService.Get()
		if err != nil {
			return nil, fmt.Errorf("loading settings: %w", err)
		}

		llm, err := ai.CreateAndValidateLLMService(current)
		if err != nil {
			return nil, err
		}

		return services.NewAgentService(llm, store.DocumentStore(), promptStore, current, dossierID), nil
	}

	cli.SetServices(&cli.Config{
		Dossier:      dossierService,
		Document:     documentService,
		Scan:         scanOrchestrator,
		Settings:     settingsService,
		AgentBuilder: agentBuilder,
		StoragePath:  store.Path(),
	})

	return cli.Execute()
}
