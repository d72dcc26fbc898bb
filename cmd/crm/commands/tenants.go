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

// NewTenantsCommand creates the tenants command group
func NewTenantsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tenants",
		Aliases: []string{"tenant"},
		Short:   "Manage tenants",
		Long:    "List, inspect, and create tenants (requires platform admin access)",
	}

	cmd.AddCommand(newTenantsListCommand())
	cmd.AddCommand(newTenantsGetCommand())
	cmd.AddCommand(newTenantsCreateCommand())

	return cmd
}

func newTenantsListCommand() *cobra.Command {
	var (
		allPages bool
		perPage  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tenants",
		Long:  "List all tenants on the platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			opts := &crm.ListOptions{PerPage: perPage}

			tenants, err := client.Tenants().List(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to list tenants: %w", err)
			}

			allTenants := tenants.Data
			if allPages && tenants.TotalPages > 1 {
				for page := 2; page <= tenants.TotalPages; page++ {
					opts.Page = page

					moreTenants, err := client.Tenants().List(ctx, opts)
					if err != nil {
						return fmt.Errorf("failed to fetch page %d: %w", page, err)
					}

					allTenants = append(allTenants, moreTenants.Data...)
				}
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return renderJSON(allTenants)
			case constants.FormatYAML:
				return renderYAML(allTenants)
			default:
				if len(allTenants) == 0 {
					fmt.Println("No tenants found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "Slug", "Plan", "Status", "ID")

				for _, tenant := range allTenants {
					table.Append(tenant.Name, tenant.Slug, tenant.Plan, tenant.Status, tenant.ID)
				}

				table.Render()
				pageHint(tenants.TotalPages, allPages)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageSize, "results per page")

	return cmd
}

func newTenantsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get TENANT_ID",
		Short: "Get tenant details",
		Long:  "Display detailed information about a specific tenant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			tenant, err := client.Tenants().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get tenant: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return renderJSON(tenant)
			case constants.FormatYAML:
				return renderYAML(tenant)
			default:
				_, _ = fmt.Fprintf(os.Stdout, "Tenant: %s\n", tenant.Name)
				_, _ = fmt.Fprintf(os.Stdout, "  ID:     %s\n", tenant.ID)
				_, _ = fmt.Fprintf(os.Stdout, "  Slug:   %s\n", tenant.Slug)
				_, _ = fmt.Fprintf(os.Stdout, "  Plan:   %s\n", tenant.Plan)
				_, _ = fmt.Fprintf(os.Stdout, "  Status: %s\n", tenant.Status)
				_, _ = fmt.Fprintf(os.Stdout, "  Trial:  %s\n", formatTime(tenant.TrialEndsAt))
			}

			return nil
		},
	}
}

func newTenantsCreateCommand() *cobra.Command {
	var (
		name string
		slug string
		plan string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a tenant",
		Long:  "Create a new tenant on the platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			tenant, err := client.Tenants().Create(context.Background(), &crm.TenantCreateRequest{
				Name: name,
				Slug: slug,
				Plan: plan,
			})
			if err != nil {
				return fmt.Errorf("failed to create tenant: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully created tenant '%s' with ID %s\n", tenant.Name, tenant.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "tenant name (required)")
	cmd.Flags().StringVar(&slug, "slug", "", "URL-safe tenant slug (required)")
	cmd.Flags().StringVar(&plan, "plan", "", "subscription plan")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("slug")

	return cmd
}
