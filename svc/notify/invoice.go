package notify

import "github.com/shopspring/decimal"

// InvoiceLine is one ordered product: (product id, external id, model, price, quantity).
type InvoiceLine struct {
	ProductInfoID int64           `json:"product_info_id"`
	ExternalID    int64           `json:"external_id"`
	Model         string          `json:"model"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
}

// OrderItem is an invoice line together with the email of the user owning
// the shop that supplies it.
type OrderItem struct {
	Line      InvoiceLine
	ShopEmail string
}

// ShopInvoice holds the lines of one order supplied by a single shop.
type ShopInvoice struct {
	ShopEmail string
	Lines     []InvoiceLine
}

// Invoice is an order's full line list plus the same lines grouped by shop.
// Shops appear in the order their first item appears in Lines, and lines
// keep their relative order inside each group.
type Invoice struct {
	Lines []InvoiceLine
	Shops []ShopInvoice
}

// NewInvoice builds the full and per-shop invoices in a single pass.
func NewInvoice(items []OrderItem) Invoice {
	inv := Invoice{Lines: make([]InvoiceLine, 0, len(items))}
	index := make(map[string]int)

	for _, item := range items {
		i, ok := index[item.ShopEmail]
		if !ok {
			i = len(inv.Shops)
			index[item.ShopEmail] = i
			inv.Shops = append(inv.Shops, ShopInvoice{ShopEmail: item.ShopEmail})
		}
		inv.Shops[i].Lines = append(inv.Shops[i].Lines, item.Line)
		inv.Lines = append(inv.Lines, item.Line)
	}

	return inv
}
