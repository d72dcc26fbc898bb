package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crmplatform-io/crm/internal/constants"
	"github.com/crmplatform-io/crm/pkg/crm"
)

// NewOpportunitiesCommand creates the opportunities command group
func NewOpportunitiesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "opportunities",
		Aliases: []string{"opportunity", "opps"},
		Short:   "Manage opportunities",
		Long:    "List, inspect, create, and close sales opportunities",
	}

	cmd.AddCommand(newOpportunitiesListCommand())
	cmd.AddCommand(newOpportunitiesGetCommand())
	cmd.AddCommand(newOpportunitiesCreateCommand())
	cmd.AddCommand(newOpportunitiesWinCommand())
	cmd.AddCommand(newOpportunitiesLoseCommand())

	return cmd
}

func newOpportunitiesListCommand() *cobra.Command {
	var (
		allPages   bool
		perPage    int
		status     string
		pipelineID string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List opportunities",
		Long:  "List all sales opportunities for the current tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			opts := &crm.ListOptions{PerPage: perPage, Status: status, PipelineID: pipelineID}

			opportunities, err := client.Opportunities().List(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to list opportunities: %w", err)
			}

			allOpportunities := opportunities.Data
			if allPages && opportunities.TotalPages > 1 {
				for page := 2; page <= opportunities.TotalPages; page++ {
					opts.Page = page

					moreOpportunities, err := client.Opportunities().List(ctx, opts)
					if err != nil {
						return fmt.Errorf("failed to fetch page %d: %w", page, err)
					}

					allOpportunities = append(allOpportunities, moreOpportunities.Data...)
				}
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return renderJSON(allOpportunities)
			case constants.FormatYAML:
				return renderYAML(allOpportunities)
			default:
				if len(allOpportunities) == 0 {
					fmt.Println("No opportunities found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "Value", "Status", "Probability", "Stage", "ID")

				for _, opportunity := range allOpportunities {
					table.Append(opportunity.Name, formatMoney(opportunity.Value),
						opportunity.Status, strconv.Itoa(opportunity.Probability)+"%",
						opportunity.StageID, opportunity.ID)
				}

				table.Render()
				pageHint(opportunities.TotalPages, allPages)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageSize, "results per page")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (open, won, lost)")
	cmd.Flags().StringVar(&pipelineID, "pipeline", "", "filter by pipeline ID")

	return cmd
}

func newOpportunitiesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get OPPORTUNITY_ID",
		Short: "Get opportunity details",
		Long:  "Display detailed information about a specific opportunity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			opportunity, err := client.Opportunities().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get opportunity: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return renderJSON(opportunity)
			case constants.FormatYAML:
				return renderYAML(opportunity)
			default:
				_, _ = fmt.Fprintf(os.Stdout, "Opportunity: %s\n", opportunity.Name)
				_, _ = fmt.Fprintf(os.Stdout, "  ID:          %s\n", opportunity.ID)
				_, _ = fmt.Fprintf(os.Stdout, "  Customer:    %s\n", opportunity.CustomerID)
				_, _ = fmt.Fprintf(os.Stdout, "  Pipeline:    %s\n", opportunity.PipelineID)
				_, _ = fmt.Fprintf(os.Stdout, "  Stage:       %s\n", opportunity.StageID)
				_, _ = fmt.Fprintf(os.Stdout, "  Value:       %s\n", formatMoney(opportunity.Value))
				_, _ = fmt.Fprintf(os.Stdout, "  Probability: %d%%\n", opportunity.Probability)
				_, _ = fmt.Fprintf(os.Stdout, "  Status:      %s\n", opportunity.Status)

				switch opportunity.Status {
				case crm.OpportunityStatusWon:
					_, _ = fmt.Fprintf(os.Stdout, "  Won:         %s\n", formatTime(opportunity.WonAt))
				case crm.OpportunityStatusLost:
					_, _ = fmt.Fprintf(os.Stdout, "  Lost:        %s\n", formatTime(opportunity.LostAt))
					_, _ = fmt.Fprintf(os.Stdout, "  Reason:      %s\n", orNA(opportunity.LostReason))
				default:
					_, _ = fmt.Fprintf(os.Stdout, "  Expected:    %s\n", formatTime(opportunity.ExpectedClose))
				}
			}

			return nil
		},
	}
}

func newOpportunitiesCreateCommand() *cobra.Command {
	var (
		customerID    string
		pipelineID    string
		stageID       string
		name          string
		description   string
		valueAmount   int64
		valueCurrency string
		probability   int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an opportunity",
		Long:  "Create a new sales opportunity in a pipeline stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			opportunity, err := client.Opportunities().Create(context.Background(), &crm.OpportunityCreateRequest{
				CustomerID:    customerID,
				PipelineID:    pipelineID,
				StageID:       stageID,
				Name:          name,
				Description:   description,
				ValueAmount:   valueAmount,
				ValueCurrency: valueCurrency,
				Probability:   probability,
			})
			if err != nil {
				return fmt.Errorf("failed to create opportunity: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully created opportunity '%s' with ID %s\n",
				opportunity.Name, opportunity.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&customerID, "customer", "", "customer ID (required)")
	cmd.Flags().StringVar(&pipelineID, "pipeline", "", "pipeline ID (required)")
	cmd.Flags().StringVar(&stageID, "stage", "", "initial stage ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "opportunity name (required)")
	cmd.Flags().StringVar(&description, "description", "", "opportunity description")
	cmd.Flags().Int64Var(&valueAmount, "value", 0, "value in minor currency units")
	cmd.Flags().StringVar(&valueCurrency, "currency", "USD", "value currency")
	cmd.Flags().IntVar(&probability, "probability", 0, "win probability percentage")
	_ = cmd.MarkFlagRequired("customer")
	_ = cmd.MarkFlagRequired("pipeline")
	_ = cmd.MarkFlagRequired("stage")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newOpportunitiesWinCommand() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "win OPPORTUNITY_ID",
		Short: "Mark an opportunity as won",
		Long:  "Close an opportunity as won, optionally recording a reason",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			opportunity, err := client.Opportunities().Win(context.Background(), args[0], reason)
			if err != nil {
				return fmt.Errorf("failed to win opportunity: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Opportunity '%s' closed as %s\n", opportunity.Name, opportunity.Status)

			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "reason the deal was won")

	return cmd
}

func newOpportunitiesLoseCommand() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "lose OPPORTUNITY_ID",
		Short: "Mark an opportunity as lost",
		Long:  "Close an opportunity as lost, recording the reason",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if reason == "" {
				return ErrReasonRequired
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			opportunity, err := client.Opportunities().Lose(context.Background(), args[0], reason)
			if err != nil {
				return fmt.Errorf("failed to lose opportunity: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Opportunity '%s' closed as %s\n", opportunity.Name, opportunity.Status)

			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "reason the deal was lost (required)")

	return cmd
}
