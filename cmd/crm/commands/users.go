package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crmplatform-io/crm/internal/constants"
	"github.com/crmplatform-io/crm/pkg/crm"
)

// NewUsersCommand creates the users command group
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage users",
		Long:    "List, inspect, create, and remove users in the current tenant",
	}

	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersGetCommand())
	cmd.AddCommand(newUsersCreateCommand())
	cmd.AddCommand(newUsersDeleteCommand())

	return cmd
}

func newUsersListCommand() *cobra.Command {
	var (
		allPages bool
		perPage  int
		status   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Long:  "List all users in the current tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			opts := &crm.ListOptions{PerPage: perPage, Status: status}

			users, err := client.Users().List(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			allUsers := users.Data
			if allPages && users.TotalPages > 1 {
				for page := 2; page <= users.TotalPages; page++ {
					opts.Page = page

					moreUsers, err := client.Users().List(ctx, opts)
					if err != nil {
						return fmt.Errorf("failed to fetch page %d: %w", page, err)
					}

					allUsers = append(allUsers, moreUsers.Data...)
				}
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return renderJSON(allUsers)
			case constants.FormatYAML:
				return renderYAML(allUsers)
			default:
				if len(allUsers) == 0 {
					fmt.Println("No users found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "Email", "Status", "Last Login", "ID")

				for _, user := range allUsers {
					table.Append(user.FullName(), user.Email, user.Status,
						formatTime(user.LastLoginAt), user.ID)
				}

				table.Render()
				pageHint(users.TotalPages, allPages)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageSize, "results per page")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (active, inactive, pending_verification)")

	return cmd
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USER_ID",
		Short: "Get user details",
		Long:  "Display detailed information about a specific user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			user, err := client.Users().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return renderJSON(user)
			case constants.FormatYAML:
				return renderYAML(user)
			default:
				_, _ = fmt.Fprintf(os.Stdout, "User: %s\n", user.FullName())
				_, _ = fmt.Fprintf(os.Stdout, "  ID:         %s\n", user.ID)
				_, _ = fmt.Fprintf(os.Stdout, "  Email:      %s\n", user.Email)
				_, _ = fmt.Fprintf(os.Stdout, "  Phone:      %s\n", orNA(user.Phone))
				_, _ = fmt.Fprintf(os.Stdout, "  Status:     %s\n", user.Status)
				_, _ = fmt.Fprintf(os.Stdout, "  Verified:   %s\n", formatTime(user.EmailVerifiedAt))
				_, _ = fmt.Fprintf(os.Stdout, "  Last login: %s\n", formatTime(user.LastLoginAt))
			}

			return nil
		},
	}
}

func newUsersCreateCommand() *cobra.Command {
	var (
		email     string
		password  string
		firstName string
		lastName  string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Long:  "Create a new user in the current tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			user, err := client.Users().Create(context.Background(), &crm.UserCreateRequest{
				Email:     email,
				Password:  password,
				FirstName: firstName,
				LastName:  lastName,
			})
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully created user '%s' with ID %s\n", user.Email, user.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "user email (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "user password (required)")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newUsersDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete USER_ID",
		Short: "Delete a user",
		Long:  "Delete a user from the current tenant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really delete user '%s'? (y/N): ", args[0])

				var response string
				_, _ = fmt.Scanln(&response)

				if response != "y" && response != "Y" {
					fmt.Println("Cancelled")

					return nil
				}
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			if err := client.Users().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete user: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully deleted user '%s'\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}
