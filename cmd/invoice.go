package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/workflowr/internal/invoice"
	"github.com/manav03panchal/workflowr/internal/model"
	"github.com/manav03panchal/workflowr/internal/output"
	"github.com/manav03panchal/workflowr/internal/parser"
)

// Invoice flags.
var (
	invoiceFlagNumber string
	invoiceFlagIssue  string
	invoiceFlagDue    string
	invoiceFlagNotes  string
	invoiceFlagOutput string
	invoiceFlagNoPDF  bool
)

// invoiceCmd represents the invoice command.
var invoiceCmd = &cobra.Command{
	Use:   "invoice PROJECT",
	Short: "Bill a project's tracked time",
	Long: `Build an invoice from every task of a project with tracked time and
write it as a PDF.

The due date defaults to the issue date plus invoice.due_days from the
config. Dates accept 2026-01-31, today, tomorrow or "in 30 days".

Examples:
  workflowr invoice Site
  workflowr invoice Site --number INV-2026-007 --due "in 30 days"
  workflowr invoice Site -o ~/invoices/site.pdf --notes "Thank you!"
  workflowr invoice Site --no-pdf --format json`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeProjects,
	RunE:              runInvoice,
}

func init() {
	invoiceCmd.Flags().StringVarP(&invoiceFlagNumber, "number", "n", "", "Invoice number (default INV-<year>-<random>)")
	invoiceCmd.Flags().StringVar(&invoiceFlagIssue, "issue", "", "Issue date (default today)")
	invoiceCmd.Flags().StringVar(&invoiceFlagDue, "due", "", "Due date (default issue date plus invoice.due_days)")
	invoiceCmd.Flags().StringVar(&invoiceFlagNotes, "notes", "", "Notes printed at the bottom")
	invoiceCmd.Flags().StringVarP(&invoiceFlagOutput, "output", "o", "", "PDF path (default invoice_<project>_<number>.pdf)")
	invoiceCmd.Flags().BoolVar(&invoiceFlagNoPDF, "no-pdf", false, "Only print the invoice")
	rootCmd.AddCommand(invoiceCmd)
}

// invoiceOutput is the JSON shape of a generated invoice.
type invoiceOutput struct {
	*model.Invoice
	File string `json:"file,omitempty"`
}

func runInvoice(cmd *cobra.Command, args []string) error {
	project, err := findProject(args[0])
	if err != nil {
		return err
	}

	now := ctx.Now()
	opts := invoice.Options{
		Number:  invoiceFlagNumber,
		DueDays: ctx.Config.Invoice.DueDays,
		Notes:   invoiceFlagNotes,
	}
	if invoiceFlagIssue != "" {
		if opts.IssueDate, err = parser.ParseDay(invoiceFlagIssue, now); err != nil {
			return err
		}
	}
	if invoiceFlagDue != "" {
		base := now
		if !opts.IssueDate.IsZero() {
			base = opts.IssueDate
		}
		if opts.DueDate, err = parser.ParseDay(invoiceFlagDue, base); err != nil {
			return err
		}
	}

	inv, err := invoice.New(project, ctx.Session.Tasks.List(), opts, parser.StartOfDay(now))
	if err != nil {
		return err
	}

	var path string
	if !invoiceFlagNoPDF {
		path = invoiceFlagOutput
		if path == "" {
			path = invoice.FileName(project, inv.Number)
		}
		err = invoice.WritePDF(path, inv, invoice.RenderOptions{
			Company:  ctx.Config.Invoice.Company,
			Currency: ctx.Config.Invoice.Currency,
		})
		if err != nil {
			return err
		}
		ctx.Debugf("invoice written", "number", inv.Number, "path", path)
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(invoiceOutput{Invoice: inv, File: path})
	}
	printInvoice(inv)
	if path != "" {
		ctx.CLIFormatter().Println()
		ctx.CLIFormatter().Success("Saved " + path)
	}
	return nil
}

func printInvoice(inv *model.Invoice) {
	cli := ctx.CLIFormatter()
	cli.Title("Invoice " + inv.Number)
	cli.Field("Project", cli.ProjectName(inv.Project))
	if inv.ClientName != "" {
		cli.Field("Client", inv.ClientName)
	}
	cli.Field("Issued", output.FormatDate(inv.IssueDate))
	cli.Field("Due", output.FormatDate(inv.DueDate))
	cli.Println()

	rows := make([]output.TableRow, len(inv.Lines))
	for i, l := range inv.Lines {
		rows[i] = output.TableRow{Columns: []string{
			cli.TaskName(l.Description),
			output.FormatHours(l.Minutes),
			cli.Money(l.Rate),
			cli.Amount(l.Amount),
		}}
	}
	rows = append(rows, output.TableRow{Columns: []string{
		"Total", output.FormatHours(inv.TotalMinutes()), "", cli.Amount(inv.Total),
	}})
	cli.PrintTable([]string{"TASK", "TIME", "RATE", "AMOUNT"}, rows)
	if inv.Notes != "" {
		cli.Println()
		cli.Muted(inv.Notes)
	}
}
