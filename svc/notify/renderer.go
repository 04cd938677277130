package notify

import (
	"context"

	"github.com/dmitrymomot/shopnotify/pkg/email/templates"
)

// InvoiceView is the render input of an order-state email.
type InvoiceView struct {
	OrderID        int64
	Lines          []InvoiceLine
	AdditionalText string
}

// Renderer turns an invoice into its HTML and plain-text bodies.
type Renderer interface {
	RenderInvoice(ctx context.Context, v InvoiceView) (html, text string, err error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context, v InvoiceView) (string, string, error)

// RenderInvoice calls f(ctx, v).
func (f RendererFunc) RenderInvoice(ctx context.Context, v InvoiceView) (string, string, error) {
	return f(ctx, v)
}

// TemplateRenderer renders invoices with the templates package.
type TemplateRenderer struct{}

// RenderInvoice implements Renderer.
func (TemplateRenderer) RenderInvoice(ctx context.Context, v InvoiceView) (string, string, error) {
	params := templates.InvoiceParams{
		OrderID:        v.OrderID,
		Lines:          make([]templates.InvoiceLine, len(v.Lines)),
		AdditionalText: v.AdditionalText,
	}
	for i, l := range v.Lines {
		params.Lines[i] = templates.InvoiceLine{
			ProductID:  l.ProductInfoID,
			ExternalID: l.ExternalID,
			Model:      l.Model,
			Price:      l.Price,
			Quantity:   l.Quantity,
		}
	}

	html, err := templates.Render(ctx, templates.Invoice(params))
	if err != nil {
		return "", "", err
	}
	return html, templates.InvoiceText(params), nil
}
