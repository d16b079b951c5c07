package invoice

import (
	"fmt"
	"io"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"github.com/manav03panchal/workflowr/internal/errors"
	"github.com/manav03panchal/workflowr/internal/model"
	"github.com/manav03panchal/workflowr/internal/output"
)

// RenderOptions holds the document branding.
type RenderOptions struct {
	Company  string
	Currency string
}

var (
	accent = color.Color{Red: 131, Green: 56, Blue: 236}
	shaded = color.Color{Red: 240, Green: 240, Blue: 240}
	muted  = color.Color{Red: 120, Green: 120, Blue: 120}
)

const dateLayout = "2006-01-02"

// RenderPDF writes the invoice document to w.
func RenderPDF(w io.Writer, inv *model.Invoice, opts RenderOptions) error {
	m := build(inv, opts)
	buf, err := m.Output()
	if err != nil {
		return errors.NewSystemErrorWithOp("invoice.render", "Could not render invoice", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.NewSystemErrorWithOp("invoice.write", "Could not write invoice", err)
	}
	return nil
}

// WritePDF renders the invoice straight to a file.
func WritePDF(path string, inv *model.Invoice, opts RenderOptions) error {
	m := build(inv, opts)
	if err := m.OutputFileAndClose(path); err != nil {
		return errors.NewSystemErrorWithOp("invoice.write", fmt.Sprintf("Could not write invoice to %s", path), err)
	}
	return nil
}

func build(inv *model.Invoice, opts RenderOptions) pdf.Maroto {
	if opts.Currency == "" {
		opts.Currency = "$"
	}
	money := func(v float64) string { return output.FormatCurrency(v, opts.Currency) }

	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(15, 10, 15)

	m.RegisterHeader(func() {
		m.Row(14, func() {
			m.Col(6, func() {
				m.Text(opts.Company, props.Text{
					Top:   3,
					Style: consts.Bold,
					Size:  18,
					Color: accent,
				})
			})
			m.Col(6, func() {
				m.Text("INVOICE", props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Right,
					Size:  16,
				})
			})
		})
	})

	m.RegisterFooter(func() {
		m.Row(8, func() {
			m.Col(12, func() {
				m.Text(fmt.Sprintf("Invoice generated by %s", opts.Company), props.Text{
					Align: consts.Center,
					Size:  8,
					Color: muted,
				})
			})
		})
	})

	// Client block on the left, invoice metadata on the right.
	m.Row(24, func() {
		m.Col(6, func() {
			m.Text("Client", props.Text{Top: 2, Style: consts.Bold, Size: 11})
			m.Text("Name: "+inv.ClientName, props.Text{Top: 8, Size: 10})
			m.Text("Project: "+inv.Project, props.Text{Top: 13, Size: 10})
		})
		m.Col(6, func() {
			m.Text("Invoice #: "+inv.Number, props.Text{Top: 2, Align: consts.Right, Size: 10})
			m.Text("Issued: "+inv.IssueDate.Format(dateLayout), props.Text{Top: 8, Align: consts.Right, Size: 10})
			m.Text("Due: "+inv.DueDate.Format(dateLayout), props.Text{Top: 13, Align: consts.Right, Size: 10})
		})
	})
	m.Line(2)

	headers := []string{"Description", "Time", "Rate", "Amount"}
	rows := make([][]string, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		rows = append(rows, []string{
			l.Description,
			output.FormatHours(l.Minutes),
			money(l.Rate) + "/h",
			money(l.Amount),
		})
	}
	grid := []uint{6, 2, 2, 2}
	m.TableList(headers, rows, props.TableList{
		HeaderProp: props.TableListContent{
			Size:      10,
			GridSizes: grid,
		},
		ContentProp: props.TableListContent{
			Size:      10,
			GridSizes: grid,
		},
		Align:                consts.Left,
		AlternatedBackground: &shaded,
		HeaderContentSpace:   1,
		Line:                 false,
	})

	m.Row(14, func() {
		m.Col(12, func() {
			m.Text("Total: "+money(inv.Total), props.Text{
				Top:   5,
				Style: consts.Bold,
				Align: consts.Right,
				Size:  12,
			})
		})
	})

	if inv.Notes != "" {
		m.Row(8, func() {
			m.Col(12, func() {
				m.Text("Notes", props.Text{Top: 3, Style: consts.Bold, Size: 10})
			})
		})
		m.Row(16, func() {
			m.Col(12, func() {
				m.Text(inv.Notes, props.Text{Size: 9})
			})
		})
	}
	return m
}
