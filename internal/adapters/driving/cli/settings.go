package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage assistant settings",
	Long: `View and configure the chat assistant: LLM provider, model, and the
file-handling guard limits.

Settings keys:
  provider          LLM provider (anthropic, ollama)
  model             Provider-specific model name
  api_key           API key for cloud providers
  base_url          Endpoint override (mostly for ollama)
  max_file_bytes    Largest file whose content is read
  preview_lines     Lines shown per text preview
  max_context_docs  Documents previewed per question`,
	RunE: runSettingsList,
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all settings",
	RunE:  runSettingsList,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsList(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Assistant Settings")
	cmd.Println("==================")
	cmd.Println()

	cmd.Println("[Provider]")
	cmd.Printf("  provider: %s\n", settings.Provider.Description())
	cmd.Printf("  model:    %s\n", orUnset(settings.Model))
	if settings.Provider.IsLocal() {
		cmd.Printf("  base_url: %s\n", orUnset(settings.BaseURL))
	}
	if settings.Provider.RequiresAPIKey() {
		if settings.APIKey != "" {
			cmd.Printf("  api_key:  %s\n", maskAPIKey(settings.APIKey))
		} else {
			cmd.Printf("  api_key:  (not set)\n")
		}
	}
	cmd.Println()

	cmd.Println("[Guards]")
	cmd.Printf("  max_file_bytes:   %d (%s)\n", settings.MaxFileBytes, domain.FormatSize(settings.MaxFileBytes))
	cmd.Printf("  preview_lines:    %d\n", settings.PreviewLines)
	cmd.Printf("  max_context_docs: %d\n", settings.MaxContextDocs)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'kyc settings set' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	switch args[0] {
	case "provider":
		cmd.Println(settings.Provider.String())
	case "model":
		cmd.Println(settings.Model)
	case "api_key":
		cmd.Println(maskAPIKey(settings.APIKey))
	case "base_url":
		cmd.Println(settings.BaseURL)
	case "max_file_bytes":
		cmd.Println(settings.MaxFileBytes)
	case "preview_lines":
		cmd.Println(settings.PreviewLines)
	case "max_context_docs":
		cmd.Println(settings.MaxContextDocs)
	default:
		return fmt.Errorf("unknown setting: %s", args[0])
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	switch key {
	case "provider":
		provider := domain.AIProvider(value)
		if !provider.IsValid() {
			return fmt.Errorf("unknown provider %q (anthropic, ollama)", value)
		}
		settings.Provider = provider
	case "model":
		settings.Model = value
	case "api_key":
		settings.APIKey = value
	case "base_url":
		settings.BaseURL = value
	case "max_file_bytes":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("max_file_bytes must be a positive integer")
		}
		settings.MaxFileBytes = n
	case "preview_lines":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("preview_lines must be a positive integer")
		}
		settings.PreviewLines = n
	case "max_context_docs":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("max_context_docs must be a positive integer")
		}
		settings.MaxContextDocs = n
	default:
		return fmt.Errorf("unknown setting: %s", key)
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	if key == "api_key" {
		cmd.Println("api_key updated")
	} else {
		cmd.Printf("%s set to %s\n", key, value)
	}

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("\nNote: %v\n", err)
	}

	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "(provider default)"
	}
	return s
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
