// Package migrations embeds the goose SQL migrations of the notifier schema.
//
// The users, shops, product_infos, orders and order_items tables are owned by
// the storefront backend; only the columns the notifier reads are declared
// here so local and test databases can be created from scratch.
// confirm_email_tokens is written by the notifier itself.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
