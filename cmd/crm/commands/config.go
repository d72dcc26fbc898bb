package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/crmplatform-io/crm/internal/constants"
)

// Config is the persisted CLI configuration.
type Config struct {
	API          string `json:"api,omitempty"           yaml:"api,omitempty"`
	APIKey       string `json:"api_key,omitempty"       yaml:"api_key,omitempty"`
	Tenant       string `json:"tenant,omitempty"        yaml:"tenant,omitempty"`
	Token        string `json:"token,omitempty"         yaml:"token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`
	Username     string `json:"username,omitempty"      yaml:"username,omitempty"`
	Output       string `json:"output,omitempty"        yaml:"output,omitempty"`
}

// loadConfig reads the effective configuration from viper.
func loadConfig() *Config {
	return &Config{
		API:          viper.GetString("api"),
		APIKey:       viper.GetString("api_key"),
		Tenant:       viper.GetString("tenant"),
		Token:        viper.GetString("token"),
		RefreshToken: viper.GetString("refresh_token"),
		Username:     viper.GetString("username"),
		Output:       viper.GetString("output"),
	}
}

// configFilePath resolves the config file, defaulting to ~/.crm/config.yml.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".crm")

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.yml"), nil
}

// saveConfig writes the configuration to disk. Tokens end up in the file,
// so it is written with owner-only permissions.
func saveConfig(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	return nil
}

// NewConfigCommand creates the config command group
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "View and modify the persisted CLI configuration",
	}

	cmd.AddCommand(newConfigViewCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

func newConfigViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "View configuration",
		Long:  "Display the current configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			// Never print credentials
			masked := *config
			if masked.APIKey != "" {
				masked.APIKey = constants.MaskedSecret
			}

			if masked.Token != "" {
				masked.Token = constants.MaskedSecret
			}

			if masked.RefreshToken != "" {
				masked.RefreshToken = constants.MaskedSecret
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return renderJSON(masked)
			case constants.FormatYAML:
				return renderYAML(masked)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Setting", "Value")
				_ = table.Append("api", orNA(masked.API))
				_ = table.Append("api_key", orNA(masked.APIKey))
				_ = table.Append("tenant", orNA(masked.Tenant))
				_ = table.Append("token", orNA(masked.Token))
				_ = table.Append("username", orNA(masked.Username))
				_ = table.Append("output", orNA(masked.Output))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value and persist it (api, api_key, tenant, output)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			viper.Set(key, value)

			if err := saveConfig(loadConfig()); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Set %s\n", key)

			return nil
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear configuration",
		Long:  "Remove all persisted configuration settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, err := configFilePath()
			if err != nil {
				return err
			}

			err = os.Remove(configFile)
			if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove config file: %w", err)
			}

			_, _ = os.Stdout.WriteString("Configuration cleared\n")

			return nil
		},
	}
}
