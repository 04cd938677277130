package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"
)

// InvoiceLine is a single row of an order invoice.
type InvoiceLine struct {
	ProductID  int64
	ExternalID int64
	Model      string
	Price      decimal.Decimal
	Quantity   int
}

// Sum returns price multiplied by quantity.
func (l InvoiceLine) Sum() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// InvoiceParams is the render context of the order invoice email.
type InvoiceParams struct {
	OrderID        int64
	Lines          []InvoiceLine
	AdditionalText string
}

// Total returns the sum of all lines.
func (p InvoiceParams) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range p.Lines {
		total = total.Add(l.Sum())
	}
	return total
}

const (
	tableStyle = `width:100%;border-collapse:collapse;font-family:Arial,Helvetica,sans-serif;font-size:14px;`
	cellStyle  = `border:1px solid #dddddd;padding:6px 8px;text-align:left;`
	headStyle  = cellStyle + `background:#f5f5f5;font-weight:bold;`
)

// Invoice renders the order invoice as a standalone HTML document.
// Every dynamic value is escaped.
func Invoice(p InvoiceParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>Order #`)
		b.WriteString(strconv.FormatInt(p.OrderID, 10))
		b.WriteString(`</title></head><body>`)
		b.WriteString(`<h2 style="font-family:Arial,Helvetica,sans-serif;">Order #`)
		b.WriteString(strconv.FormatInt(p.OrderID, 10))
		b.WriteString(`</h2>`)

		fmt.Fprintf(&b, `<table style="%s"><thead><tr>`, tableStyle)
		for _, h := range []string{"#", "Product", "External ID", "Model", "Price", "Quantity", "Sum"} {
			fmt.Fprintf(&b, `<th style="%s">%s</th>`, headStyle, templ.EscapeString(h))
		}
		b.WriteString(`</tr></thead><tbody>`)

		for i, l := range p.Lines {
			b.WriteString(`<tr>`)
			for _, v := range []string{
				strconv.Itoa(i + 1),
				strconv.FormatInt(l.ProductID, 10),
				strconv.FormatInt(l.ExternalID, 10),
				l.Model,
				l.Price.StringFixed(2),
				strconv.Itoa(l.Quantity),
				l.Sum().StringFixed(2),
			} {
				fmt.Fprintf(&b, `<td style="%s">%s</td>`, cellStyle, templ.EscapeString(v))
			}
			b.WriteString(`</tr>`)
		}

		fmt.Fprintf(&b, `</tbody><tfoot><tr><td style="%s" colspan="6">Total</td><td style="%s">%s</td></tr></tfoot></table>`,
			headStyle, headStyle, templ.EscapeString(p.Total().StringFixed(2)))

		if p.AdditionalText != "" {
			fmt.Fprintf(&b, `<p style="font-family:Arial,Helvetica,sans-serif;">%s</p>`, templ.EscapeString(p.AdditionalText))
		}
		b.WriteString(`</body></html>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// InvoiceText renders the plain-text alternative of the invoice email.
func InvoiceText(p InvoiceParams) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d\n\n", p.OrderID)
	for i, l := range p.Lines {
		fmt.Fprintf(&b, "%d. %s (product %d, external id %d): %s x %d = %s\n",
			i+1, l.Model, l.ProductID, l.ExternalID,
			l.Price.StringFixed(2), l.Quantity, l.Sum().StringFixed(2))
	}
	if len(p.Lines) == 0 {
		b.WriteString("No items.\n")
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", p.Total().StringFixed(2))
	if p.AdditionalText != "" {
		fmt.Fprintf(&b, "\n%s\n", p.AdditionalText)
	}
	return b.String()
}
