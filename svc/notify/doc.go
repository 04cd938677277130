// Package notify turns storefront domain events into transactional emails.
//
// The Dispatcher reacts to four events: a user registered, a password reset
// token was created, a password was reset, and an order changed state. The
// first three send a single plain-text message. An order state change sends
// an invoice to the buyer, one copy to all admins, and one per-shop invoice
// to every supplier whose products are in the order.
//
// Data access goes through Repository; see the postgres and memory
// subpackages. Mail delivery goes through email.EmailSender.
//
//	d, err := notify.New(repo, sender, notify.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	err = d.OrderStateChanged(ctx, notify.OrderStateChanged{
//		OrderID: 42,
//		UserID:  7,
//		State:   notify.OrderStateAssembled,
//	})
package notify
