// Package events is the ingress of the notifier. It accepts storefront
// domain events as JSON envelopes over HTTP or a Redis pub/sub channel and
// routes them to a notify.Notifier.
//
// An envelope looks like:
//
//	{"id": "...", "kind": "order_state_changed",
//	 "payload": {"order_id": 42, "user_id": 7, "state": "assembled"}}
//
// Every event is handled synchronously. Over HTTP the handler outcome maps
// to the response status; on the Redis channel failures are logged and the
// subscriber moves on.
package events
