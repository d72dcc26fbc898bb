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

// NewCustomersCommand creates the customers command group
func NewCustomersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "customers",
		Aliases: []string{"customer"},
		Short:   "Manage customers",
		Long:    "List, inspect, create, and delete customer accounts",
	}

	cmd.AddCommand(newCustomersListCommand())
	cmd.AddCommand(newCustomersGetCommand())
	cmd.AddCommand(newCustomersCreateCommand())
	cmd.AddCommand(newCustomersDeleteCommand())
	cmd.AddCommand(newCustomersSearchCommand())
	cmd.AddCommand(newCustomersContactsCommand())

	return cmd
}

func newCustomersListCommand() *cobra.Command {
	var (
		allPages bool
		perPage  int
		status   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		Long:  "List all customer accounts for the current tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			opts := &crm.ListOptions{PerPage: perPage, Status: status}

			customers, err := client.Customers().List(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to list customers: %w", err)
			}

			// Fetch all pages if requested
			allCustomers := customers.Data
			if allPages && customers.TotalPages > 1 {
				for page := 2; page <= customers.TotalPages; page++ {
					opts.Page = page

					moreCustomers, err := client.Customers().List(ctx, opts)
					if err != nil {
						return fmt.Errorf("failed to fetch page %d: %w", page, err)
					}

					allCustomers = append(allCustomers, moreCustomers.Data...)
				}
			}

			// Output results
			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return renderJSON(allCustomers)
			case constants.FormatYAML:
				return renderYAML(allCustomers)
			default:
				if len(allCustomers) == 0 {
					fmt.Println("No customers found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Code", "Name", "Type", "Status", "Industry", "ID")

				for _, customer := range allCustomers {
					table.Append(customer.Code, customer.Name, customer.Type,
						customer.Status, orNA(customer.Industry), customer.ID)
				}

				table.Render()
				pageHint(customers.TotalPages, allPages)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageSize, "results per page")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (active, inactive, churned)")

	return cmd
}

func newCustomersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CUSTOMER_ID",
		Short: "Get customer details",
		Long:  "Display detailed information about a specific customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			customer, err := client.Customers().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get customer: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return renderJSON(customer)
			case constants.FormatYAML:
				return renderYAML(customer)
			default:
				_, _ = fmt.Fprintf(os.Stdout, "Customer: %s\n", customer.Name)
				_, _ = fmt.Fprintf(os.Stdout, "  ID:       %s\n", customer.ID)
				_, _ = fmt.Fprintf(os.Stdout, "  Code:     %s\n", customer.Code)
				_, _ = fmt.Fprintf(os.Stdout, "  Type:     %s\n", customer.Type)
				_, _ = fmt.Fprintf(os.Stdout, "  Status:   %s\n", customer.Status)
				_, _ = fmt.Fprintf(os.Stdout, "  Industry: %s\n", orNA(customer.Industry))
				_, _ = fmt.Fprintf(os.Stdout, "  Website:  %s\n", orNA(customer.Website))

				if customer.Email != nil {
					_, _ = fmt.Fprintf(os.Stdout, "  Email:    %s\n", customer.Email.Address)
				}

				if customer.Phone != nil {
					_, _ = fmt.Fprintf(os.Stdout, "  Phone:    %s\n", customer.Phone.Number)
				}

				_, _ = fmt.Fprintf(os.Stdout, "  Created:  %s\n", customer.CreatedAt.Format("2006-01-02 15:04"))
			}

			return nil
		},
	}
}

func newCustomersCreateCommand() *cobra.Command {
	var (
		code         string
		name         string
		customerType string
		email        string
		website      string
		industry     string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a customer",
		Long:  "Create a new customer account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			request := &crm.CustomerCreateRequest{
				Code:     code,
				Name:     name,
				Type:     customerType,
				Website:  website,
				Industry: industry,
			}

			if email != "" {
				request.Email = &crm.Email{Address: email, IsPrimary: true}
			}

			customer, err := client.Customers().Create(context.Background(), request)
			if err != nil {
				return fmt.Errorf("failed to create customer: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully created customer '%s' with ID %s\n", customer.Name, customer.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "customer code (required)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "customer name (required)")
	cmd.Flags().StringVar(&customerType, "type", crm.CustomerTypeBusiness, "customer type (individual, business)")
	cmd.Flags().StringVar(&email, "email", "", "primary email address")
	cmd.Flags().StringVar(&website, "website", "", "website URL")
	cmd.Flags().StringVar(&industry, "industry", "", "industry")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCustomersDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete CUSTOMER_ID",
		Short: "Delete a customer",
		Long:  "Delete a customer account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			customerID := args[0]

			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really delete customer '%s'? (y/N): ", customerID)

				var response string

				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					_, _ = os.Stdout.WriteString("Cancelled\n")

					return nil
				}
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			err = client.Customers().Delete(context.Background(), customerID)
			if err != nil {
				return fmt.Errorf("failed to delete customer: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully deleted customer '%s'\n", customerID)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "force deletion without confirmation")

	return cmd
}

func newCustomersSearchCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search customers",
		Long:  "Free-text search over customer names, codes, and contact details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			customers, err := client.Customers().Search(context.Background(), args[0], limit)
			if err != nil {
				return fmt.Errorf("failed to search customers: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return renderJSON(customers)
			case constants.FormatYAML:
				return renderYAML(customers)
			default:
				if len(customers) == 0 {
					fmt.Println("No customers found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Code", "Name", "Type", "Status", "ID")

				for _, customer := range customers {
					table.Append(customer.Code, customer.Name, customer.Type, customer.Status, customer.ID)
				}

				table.Render()
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DefaultSearchLimit, "maximum number of results")

	return cmd
}

// newCustomersContactsCommand nests contact operations under customers,
// matching the API's resource layout.
func newCustomersContactsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contacts",
		Aliases: []string{"contact"},
		Short:   "Manage customer contacts",
		Long:    "List, inspect, create, and delete contacts of a customer",
	}

	cmd.AddCommand(newContactsListCommand())
	cmd.AddCommand(newContactsGetCommand())
	cmd.AddCommand(newContactsCreateCommand())
	cmd.AddCommand(newContactsDeleteCommand())

	return cmd
}
