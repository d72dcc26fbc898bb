package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/crmplatform-io/crm/pkg/crm"
	"github.com/crmplatform-io/crm/pkg/crmclient"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		baseURL  string
		email    string
		password string
		tenantID string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to the CRM platform",
		Long:  "Authenticate with email and password and store the issued tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			if baseURL == "" {
				baseURL = viper.GetString("api")
			}

			if baseURL == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("API base URL: ")
				baseURL, _ = reader.ReadString('\n')
				baseURL = strings.TrimSpace(baseURL)
			}

			if baseURL == "" {
				return ErrAPIRequired
			}

			if tenantID == "" {
				tenantID = viper.GetString("tenant")
			}

			if email == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Email: ")
				email, _ = reader.ReadString('\n')
				email = strings.TrimSpace(email)
			}

			if email == "" {
				return ErrEmailRequired
			}

			if password == "" {
				fmt.Print("Password: ")

				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				password = string(bytePassword)

				fmt.Println()
			}

			client, err := crmclient.New(&crm.Config{
				BaseURL:  baseURL,
				TenantID: tenantID,
			})
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			ctx := context.Background()

			login, err := client.Auth().Login(ctx, email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			// Persist the session
			config := loadConfig()
			config.API = baseURL
			config.Tenant = tenantID
			config.Token = login.AccessToken
			config.RefreshToken = login.RefreshToken
			config.Username = login.User.Email

			if err := saveConfig(config); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully logged in to %s as %s\n", baseURL, login.User.Email)

			return nil
		},
	}

	// Add flags
	cmd.Flags().StringVarP(&baseURL, "api", "a", "", "API base URL")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email for authentication")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password for authentication")
	cmd.Flags().StringVarP(&tenantID, "tenant", "T", "", "tenant ID")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from the CRM platform",
		Long:  "Invalidate the session server-side and clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Best effort server-side invalidation; local credentials are
			// cleared regardless.
			if client, err := createClient(); err == nil {
				_ = client.Auth().Logout(context.Background())
			}

			config := loadConfig()
			config.Token = ""
			config.RefreshToken = ""
			config.Username = ""

			if err := saveConfig(config); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Println("Successfully logged out")

			return nil
		},
	}
}
