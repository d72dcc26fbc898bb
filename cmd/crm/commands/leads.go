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

// NewLeadsCommand creates the leads command group
func NewLeadsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "leads",
		Aliases: []string{"lead"},
		Short:   "Manage leads",
		Long:    "List, inspect, qualify, and convert sales leads",
	}

	cmd.AddCommand(newLeadsListCommand())
	cmd.AddCommand(newLeadsGetCommand())
	cmd.AddCommand(newLeadsCreateCommand())
	cmd.AddCommand(newLeadsQualifyCommand())
	cmd.AddCommand(newLeadsConvertCommand())

	return cmd
}

func newLeadsListCommand() *cobra.Command {
	var (
		allPages bool
		perPage  int
		status   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leads",
		Long:  "List all sales leads for the current tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			opts := &crm.ListOptions{PerPage: perPage, Status: status}

			leads, err := client.Leads().List(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to list leads: %w", err)
			}

			allLeads := leads.Data
			if allPages && leads.TotalPages > 1 {
				for page := 2; page <= leads.TotalPages; page++ {
					opts.Page = page

					moreLeads, err := client.Leads().List(ctx, opts)
					if err != nil {
						return fmt.Errorf("failed to fetch page %d: %w", page, err)
					}

					allLeads = append(allLeads, moreLeads.Data...)
				}
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return renderJSON(allLeads)
			case constants.FormatYAML:
				return renderYAML(allLeads)
			default:
				if len(allLeads) == 0 {
					fmt.Println("No leads found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Company", "Contact", "Status", "Score", "Source", "ID")

				for _, lead := range allLeads {
					table.Append(orNA(lead.CompanyName), orNA(lead.ContactName),
						lead.Status, strconv.Itoa(lead.Score), orNA(lead.Source), lead.ID)
				}

				table.Render()
				pageHint(leads.TotalPages, allPages)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageSize, "results per page")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (new, contacted, qualified, unqualified, converted)")

	return cmd
}

func newLeadsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get LEAD_ID",
		Short: "Get lead details",
		Long:  "Display detailed information about a specific lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			lead, err := client.Leads().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get lead: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return renderJSON(lead)
			case constants.FormatYAML:
				return renderYAML(lead)
			default:
				_, _ = fmt.Fprintf(os.Stdout, "Lead: %s\n", orNA(lead.CompanyName))
				_, _ = fmt.Fprintf(os.Stdout, "  ID:        %s\n", lead.ID)
				_, _ = fmt.Fprintf(os.Stdout, "  Contact:   %s\n", orNA(lead.ContactName))
				_, _ = fmt.Fprintf(os.Stdout, "  Email:     %s\n", orNA(lead.ContactEmail))
				_, _ = fmt.Fprintf(os.Stdout, "  Status:    %s\n", lead.Status)
				_, _ = fmt.Fprintf(os.Stdout, "  Score:     %d\n", lead.Score)
				_, _ = fmt.Fprintf(os.Stdout, "  Source:    %s\n", orNA(lead.Source))
				_, _ = fmt.Fprintf(os.Stdout, "  Qualified: %s\n", formatTime(lead.QualifiedAt))
				_, _ = fmt.Fprintf(os.Stdout, "  Converted: %s\n", formatTime(lead.ConvertedAt))

				if lead.ConvertedOpportunityID != "" {
					_, _ = fmt.Fprintf(os.Stdout, "  Opportunity: %s\n", lead.ConvertedOpportunityID)
				}
			}

			return nil
		},
	}
}

func newLeadsCreateCommand() *cobra.Command {
	var (
		company string
		contact string
		email   string
		source  string
		score   int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a lead",
		Long:  "Create a new sales lead",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			lead, err := client.Leads().Create(context.Background(), &crm.LeadCreateRequest{
				CompanyName:  company,
				ContactName:  contact,
				ContactEmail: email,
				Source:       source,
				Score:        score,
			})
			if err != nil {
				return fmt.Errorf("failed to create lead: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully created lead '%s' with ID %s\n", lead.CompanyName, lead.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "company name")
	cmd.Flags().StringVar(&contact, "contact", "", "contact name")
	cmd.Flags().StringVar(&email, "email", "", "contact email")
	cmd.Flags().StringVar(&source, "source", "", "lead source")
	cmd.Flags().IntVar(&score, "score", 0, "initial lead score")

	return cmd
}

func newLeadsQualifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "qualify LEAD_ID",
		Short: "Qualify a lead",
		Long:  "Mark a lead as qualified, making it eligible for conversion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			lead, err := client.Leads().Qualify(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to qualify lead: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Lead '%s' is now %s\n", lead.ID, lead.Status)

			return nil
		},
	}
}

func newLeadsConvertCommand() *cobra.Command {
	var (
		name        string
		customerID  string
		pipelineID  string
		stageID     string
		valueAmount int64
	)

	cmd := &cobra.Command{
		Use:   "convert LEAD_ID",
		Short: "Convert a lead",
		Long:  "Convert a qualified lead into an opportunity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			opportunityData := map[string]any{}
			if name != "" {
				opportunityData["opportunity_name"] = name
			}

			if customerID != "" {
				opportunityData["customer_id"] = customerID
			}

			if pipelineID != "" {
				opportunityData["pipeline_id"] = pipelineID
			}

			if stageID != "" {
				opportunityData["stage_id"] = stageID
			}

			if valueAmount > 0 {
				opportunityData["value_amount"] = valueAmount
			}

			result, err := client.Leads().Convert(context.Background(), args[0], opportunityData)
			if err != nil {
				return fmt.Errorf("failed to convert lead: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return renderJSON(result)
			case constants.FormatYAML:
				return renderYAML(result)
			default:
				_, _ = fmt.Fprintf(os.Stdout, "Successfully converted lead '%s'\n", args[0])

				if opportunityID, ok := result["opportunity_id"].(string); ok {
					_, _ = fmt.Fprintf(os.Stdout, "Opportunity: %s\n", opportunityID)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "opportunity name")
	cmd.Flags().StringVar(&customerID, "customer", "", "customer ID to attach the opportunity to")
	cmd.Flags().StringVar(&pipelineID, "pipeline", "", "pipeline ID")
	cmd.Flags().StringVar(&stageID, "stage", "", "initial stage ID")
	cmd.Flags().Int64Var(&valueAmount, "value", 0, "opportunity value in minor currency units")

	return cmd
}
