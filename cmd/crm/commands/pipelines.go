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
)

// NewPipelinesCommand creates the pipelines command group
func NewPipelinesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pipelines",
		Aliases: []string{"pipeline"},
		Short:   "Manage pipelines",
		Long:    "List and inspect sales pipelines and their stages",
	}

	cmd.AddCommand(newPipelinesListCommand())
	cmd.AddCommand(newPipelinesGetCommand())

	return cmd
}

func newPipelinesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pipelines",
		Long:  "List all sales pipelines for the current tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			pipelines, err := client.Pipelines().List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list pipelines: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return renderJSON(pipelines)
			case constants.FormatYAML:
				return renderYAML(pipelines)
			default:
				if len(pipelines) == 0 {
					fmt.Println("No pipelines found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "Stages", "Default", "Status", "ID")

				for _, pipeline := range pipelines {
					isDefault := ""
					if pipeline.IsDefault {
						isDefault = "yes"
					}

					table.Append(pipeline.Name, strconv.Itoa(len(pipeline.Stages)),
						isDefault, pipeline.Status, pipeline.ID)
				}

				table.Render()
			}

			return nil
		},
	}
}

func newPipelinesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PIPELINE_ID",
		Short: "Get pipeline details",
		Long:  "Display a pipeline and its ordered stages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			pipeline, err := client.Pipelines().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get pipeline: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return renderJSON(pipeline)
			case constants.FormatYAML:
				return renderYAML(pipeline)
			default:
				_, _ = fmt.Fprintf(os.Stdout, "Pipeline: %s\n", pipeline.Name)
				_, _ = fmt.Fprintf(os.Stdout, "  ID:          %s\n", pipeline.ID)
				_, _ = fmt.Fprintf(os.Stdout, "  Description: %s\n", orNA(pipeline.Description))
				_, _ = fmt.Fprintf(os.Stdout, "  Default:     %t\n", pipeline.IsDefault)
				_, _ = fmt.Fprintf(os.Stdout, "  Status:      %s\n", pipeline.Status)

				if len(pipeline.Stages) > 0 {
					_, _ = fmt.Fprintln(os.Stdout, "  Stages:")

					table := tablewriter.NewWriter(os.Stdout)
					table.Header("Order", "Name", "Type", "Probability", "ID")

					for _, stage := range pipeline.Stages {
						table.Append(strconv.Itoa(stage.Order), stage.Name, stage.Type,
							strconv.Itoa(stage.Probability)+"%", stage.ID)
					}

					table.Render()
				}
			}

			return nil
		},
	}
}
