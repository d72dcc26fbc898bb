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

func newContactsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list CUSTOMER_ID",
		Short: "List contacts",
		Long:  "List all contacts of a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			contacts, err := client.Contacts().List(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to list contacts: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return renderJSON(contacts)
			case constants.FormatYAML:
				return renderYAML(contacts)
			default:
				if len(contacts) == 0 {
					fmt.Println("No contacts found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "Title", "Email", "Primary", "ID")

				for _, contact := range contacts {
					email := constants.NotAvailable
					if contact.Email != nil {
						email = contact.Email.Address
					}

					primary := "no"
					if contact.IsPrimary {
						primary = "yes"
					}

					table.Append(contact.FullName(), orNA(contact.Title), email, primary, contact.ID)
				}

				table.Render()
			}

			return nil
		},
	}
}

func newContactsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CUSTOMER_ID CONTACT_ID",
		Short: "Get contact details",
		Long:  "Display detailed information about a specific contact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			contact, err := client.Contacts().Get(context.Background(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to get contact: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return renderJSON(contact)
			case constants.FormatYAML:
				return renderYAML(contact)
			default:
				_, _ = fmt.Fprintf(os.Stdout, "Contact: %s\n", contact.FullName())
				_, _ = fmt.Fprintf(os.Stdout, "  ID:       %s\n", contact.ID)
				_, _ = fmt.Fprintf(os.Stdout, "  Customer: %s\n", contact.CustomerID)
				_, _ = fmt.Fprintf(os.Stdout, "  Title:    %s\n", orNA(contact.Title))

				if contact.Email != nil {
					_, _ = fmt.Fprintf(os.Stdout, "  Email:    %s\n", contact.Email.Address)
				}

				if contact.Phone != nil {
					_, _ = fmt.Fprintf(os.Stdout, "  Phone:    %s\n", contact.Phone.Number)
				}

				_, _ = fmt.Fprintf(os.Stdout, "  Primary:  %t\n", contact.IsPrimary)
			}

			return nil
		},
	}
}

func newContactsCreateCommand() *cobra.Command {
	var (
		firstName string
		lastName  string
		title     string
		email     string
		isPrimary bool
	)

	cmd := &cobra.Command{
		Use:   "create CUSTOMER_ID",
		Short: "Create a contact",
		Long:  "Create a new contact under a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			request := &crm.ContactCreateRequest{
				FirstName: firstName,
				LastName:  lastName,
				Title:     title,
				IsPrimary: isPrimary,
			}

			if email != "" {
				request.Email = &crm.Email{Address: email, IsPrimary: true}
			}

			contact, err := client.Contacts().Create(context.Background(), args[0], request)
			if err != nil {
				return fmt.Errorf("failed to create contact: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully created contact '%s' with ID %s\n", contact.FullName(), contact.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "first name (required)")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&title, "title", "", "job title")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().BoolVar(&isPrimary, "primary", false, "mark as the primary contact")
	_ = cmd.MarkFlagRequired("first-name")

	return cmd
}

func newContactsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete CUSTOMER_ID CONTACT_ID",
		Short: "Delete a contact",
		Long:  "Delete a contact from a customer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really delete contact '%s'? (y/N): ", args[1])

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

			err = client.Contacts().Delete(context.Background(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to delete contact: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully deleted contact '%s'\n", args[1])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "force deletion without confirmation")

	return cmd
}
