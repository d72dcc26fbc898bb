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

// NewDealsCommand creates the deals command group
func NewDealsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deals",
		Aliases: []string{"deal"},
		Short:   "Manage deals",
		Long:    "List and inspect closed deals",
	}

	cmd.AddCommand(newDealsListCommand())
	cmd.AddCommand(newDealsGetCommand())

	return cmd
}

func newDealsListCommand() *cobra.Command {
	var (
		allPages bool
		perPage  int
		status   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deals",
		Long:  "List all closed deals for the current tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			opts := &crm.ListOptions{PerPage: perPage, Status: status}

			deals, err := client.Deals().List(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to list deals: %w", err)
			}

			allDeals := deals.Data
			if allPages && deals.TotalPages > 1 {
				for page := 2; page <= deals.TotalPages; page++ {
					opts.Page = page

					moreDeals, err := client.Deals().List(ctx, opts)
					if err != nil {
						return fmt.Errorf("failed to fetch page %d: %w", page, err)
					}

					allDeals = append(allDeals, moreDeals.Data...)
				}
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return renderJSON(allDeals)
			case constants.FormatYAML:
				return renderYAML(allDeals)
			default:
				if len(allDeals) == 0 {
					fmt.Println("No deals found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Number", "Name", "Value", "Status", "Closed", "ID")

				for _, deal := range allDeals {
					table.Append(orNA(deal.DealNumber), deal.Name, formatMoney(deal.Value),
						deal.Status, formatTime(deal.ClosedAt), deal.ID)
				}

				table.Render()
				pageHint(deals.TotalPages, allPages)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageSize, "results per page")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")

	return cmd
}

func newDealsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DEAL_ID",
		Short: "Get deal details",
		Long:  "Display detailed information about a specific deal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			deal, err := client.Deals().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get deal: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return renderJSON(deal)
			case constants.FormatYAML:
				return renderYAML(deal)
			default:
				_, _ = fmt.Fprintf(os.Stdout, "Deal: %s\n", deal.Name)
				_, _ = fmt.Fprintf(os.Stdout, "  ID:          %s\n", deal.ID)
				_, _ = fmt.Fprintf(os.Stdout, "  Number:      %s\n", orNA(deal.DealNumber))
				_, _ = fmt.Fprintf(os.Stdout, "  Opportunity: %s\n", deal.OpportunityID)
				_, _ = fmt.Fprintf(os.Stdout, "  Customer:    %s\n", deal.CustomerID)
				_, _ = fmt.Fprintf(os.Stdout, "  Value:       %s\n", formatMoney(deal.Value))
				_, _ = fmt.Fprintf(os.Stdout, "  Status:      %s\n", deal.Status)
				_, _ = fmt.Fprintf(os.Stdout, "  Closed:      %s\n", formatTime(deal.ClosedAt))

				if len(deal.LineItems) > 0 {
					_, _ = fmt.Fprintln(os.Stdout, "  Line items:")

					table := tablewriter.NewWriter(os.Stdout)
					table.Header("Product", "Quantity", "Unit Price", "Total")

					for _, item := range deal.LineItems {
						table.Append(item.ProductName, fmt.Sprintf("%d", item.Quantity),
							fmt.Sprintf("%.2f", float64(item.UnitPrice)/100),
							fmt.Sprintf("%.2f", float64(item.TotalAmount)/100))
					}

					table.Render()
				}
			}

			return nil
		},
	}
}
