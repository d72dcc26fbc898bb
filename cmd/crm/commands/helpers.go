package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/crmplatform-io/crm/internal/constants"
	"github.com/crmplatform-io/crm/pkg/crm"
	"github.com/crmplatform-io/crm/pkg/crmclient"
)

// Common static errors used throughout the commands package.
var (
	ErrAPIRequired      = errors.New("API base URL is required (use --api or 'crm login')")
	ErrEmailRequired    = errors.New("email is required")
	ErrReasonRequired   = errors.New("a reason is required (use --reason)")
	ErrNotAuthenticated = errors.New("not authenticated. Run 'crm login' first")
)

// createClient builds a crm.Client from flags, environment, and the
// saved configuration.
func createClient() (crm.Client, error) {
	baseURL := viper.GetString("api")
	if baseURL == "" {
		return nil, ErrAPIRequired
	}

	config := &crm.Config{
		BaseURL:     baseURL,
		APIKey:      viper.GetString("api_key"),
		AccessToken: viper.GetString("token"),
		TenantID:    viper.GetString("tenant"),
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = stderrLogger{}
	}

	client, err := crmclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// stderrLogger writes structured log lines to stderr for --verbose runs.
type stderrLogger struct{}

func (stderrLogger) Debug(msg string, fields map[string]interface{}) { logLine("DEBUG", msg, fields) }
func (stderrLogger) Info(msg string, fields map[string]interface{})  { logLine("INFO", msg, fields) }
func (stderrLogger) Warn(msg string, fields map[string]interface{})  { logLine("WARN", msg, fields) }
func (stderrLogger) Error(msg string, fields map[string]interface{}) { logLine("ERROR", msg, fields) }

func logLine(level, msg string, fields map[string]interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "%s %s", level, msg)

	for key, value := range fields {
		_, _ = fmt.Fprintf(os.Stderr, " %s=%v", key, value)
	}

	_, _ = fmt.Fprintln(os.Stderr)
}

// renderJSON encodes data as indented JSON on stdout.
func renderJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding to JSON: %w", err)
	}

	return nil
}

// renderYAML encodes data as YAML on stdout.
func renderYAML(data interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding to YAML: %w", err)
	}

	return nil
}

// formatMoney renders a monetary value as "1234.00 USD".
func formatMoney(money crm.Money) string {
	if money.Currency == "" {
		return constants.NotAvailable
	}

	return fmt.Sprintf("%.2f %s", money.DecimalAmount(), money.Currency)
}

// formatTime renders an optional timestamp, or N/A when absent.
func formatTime(value *time.Time) string {
	if value == nil || value.IsZero() {
		return constants.NotAvailable
	}

	return value.Format("2006-01-02 15:04")
}

// orNA substitutes N/A for empty strings in table cells.
func orNA(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

// pageHint prints the standard trailing hint for truncated lists.
func pageHint(totalPages int, allPages bool) {
	if !allPages && totalPages > 1 {
		_, _ = fmt.Fprintf(os.Stdout, "\nShowing page 1 of %d. Use --all to fetch all pages.\n", totalPages)
	}
}
