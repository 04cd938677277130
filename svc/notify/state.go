package notify

import "fmt"

// OrderState is an order lifecycle state code.
type OrderState string

const (
	OrderStateBasket    OrderState = "basket"
	OrderStateNew       OrderState = "new"
	OrderStateConfirmed OrderState = "confirmed"
	OrderStateAssembled OrderState = "assembled"
	OrderStateSent      OrderState = "sent"
	OrderStateDelivered OrderState = "delivered"
	OrderStateCanceled  OrderState = "canceled"
)

var orderStateLabels = map[OrderState]string{
	OrderStateBasket:    "Basket",
	OrderStateNew:       "New",
	OrderStateConfirmed: "Confirmed",
	OrderStateAssembled: "Assembled",
	OrderStateSent:      "Sent",
	OrderStateDelivered: "Delivered",
	OrderStateCanceled:  "Canceled",
}

// OrderStates lists every known state in lifecycle order.
var OrderStates = []OrderState{
	OrderStateBasket,
	OrderStateNew,
	OrderStateConfirmed,
	OrderStateAssembled,
	OrderStateSent,
	OrderStateDelivered,
	OrderStateCanceled,
}

// Label returns the human-readable name of the state.
// Lookup is by exact code; anything else is ErrUnknownOrderState.
func (s OrderState) Label() (string, error) {
	label, ok := orderStateLabels[s]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownOrderState, string(s))
	}
	return label, nil
}

// OrderSubject builds the subject line shared by every email of one
// order-state notification: "<label> order #<id>".
func OrderSubject(state OrderState, orderID int64) (string, error) {
	label, err := state.Label()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s order #%d", label, orderID), nil
}
