package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/shopnotify/pkg/email"
	"github.com/dmitrymomot/shopnotify/pkg/logger"
)

// OrderStateChanged sends the order invoice to the buyer, to all admins in
// one message, and to every shop supplying the order with only its lines.
// Sends stop at the first failure; emails already sent stay sent.
func (d *Dispatcher) OrderStateChanged(ctx context.Context, e OrderStateChanged) error {
	subject, err := OrderSubject(e.State, e.OrderID)
	if err != nil {
		return err
	}

	log := d.logger.With(logger.OrderID(e.OrderID), logger.OrderState(string(e.State)))

	buyer, err := d.repo.GetUser(ctx, e.UserID)
	if err != nil {
		return fmt.Errorf("get buyer %d: %w", e.UserID, err)
	}

	items, err := d.repo.ListOrderItems(ctx, e.OrderID)
	if err != nil {
		return fmt.Errorf("list items of order %d: %w", e.OrderID, err)
	}
	invoice := NewInvoice(items)

	if err := d.sendInvoice(ctx, subject, []string{buyer.Email}, InvoiceView{
		OrderID:        e.OrderID,
		Lines:          invoice.Lines,
		AdditionalText: d.thankYou,
	}); err != nil {
		return fmt.Errorf("send invoice to buyer: %w", err)
	}

	admins, err := d.repo.ListUsersByType(ctx, UserTypes[2])
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}
	if len(admins) == 0 {
		log.LogAttrs(ctx, slog.LevelWarn, "no admins to notify")
	} else {
		to := make([]string, len(admins))
		for i, a := range admins {
			to[i] = a.Email
		}
		if err := d.sendInvoice(ctx, subject, to, InvoiceView{
			OrderID: e.OrderID,
			Lines:   invoice.Lines,
		}); err != nil {
			return fmt.Errorf("send invoice to admins: %w", err)
		}
	}

	for _, shop := range invoice.Shops {
		if err := d.sendInvoice(ctx, subject, []string{shop.ShopEmail}, InvoiceView{
			OrderID: e.OrderID,
			Lines:   shop.Lines,
		}); err != nil {
			return fmt.Errorf("send invoice to shop %s: %w", shop.ShopEmail, err)
		}
	}

	log.LogAttrs(ctx, slog.LevelDebug, "order notifications sent",
		slog.Int("shops", len(invoice.Shops)),
		slog.Int("admins", len(admins)),
	)
	return nil
}

func (d *Dispatcher) sendInvoice(ctx context.Context, subject string, to []string, v InvoiceView) error {
	html, text, err := d.renderer.RenderInvoice(ctx, v)
	if err != nil {
		return fmt.Errorf("render invoice: %w", err)
	}
	return d.send(ctx, email.SendEmailParams{
		SendTo:   to,
		Subject:  subject,
		BodyText: text,
		BodyHTML: html,
		Tag:      tagOrderState,
	})
}
