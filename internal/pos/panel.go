package pos

import "fmt"

// Panel is the one visible right-hand panel of the cashier view.
type Panel int

const (
	PanelEntry Panel = iota
	PanelPaymentOption
	PanelPaymentKeypad
	PanelComplete
)

func (p Panel) String() string {
	switch p {
	case PanelEntry:
		return "entry"
	case PanelPaymentOption:
		return "payment_option"
	case PanelPaymentKeypad:
		return "payment_keypad"
	case PanelComplete:
		return "complete"
	default:
		return "unknown"
	}
}

type Event int

const (
	EventPay Event = iota
	EventBack
	EventPaid
	EventNewTransaction
	EventReprint
)

func (e Event) String() string {
	switch e {
	case EventPay:
		return "pay"
	case EventBack:
		return "back"
	case EventPaid:
		return "paid"
	case EventNewTransaction:
		return "new_transaction"
	case EventReprint:
		return "reprint"
	default:
		return "unknown"
	}
}

// PanelPaymentOption has no edges yet; the flow goes straight to the keypad.
var transitions = map[Panel]map[Event]Panel{
	PanelEntry:         {EventPay: PanelPaymentKeypad},
	PanelPaymentKeypad: {EventBack: PanelEntry, EventPaid: PanelComplete},
	PanelComplete:      {EventNewTransaction: PanelEntry, EventReprint: PanelComplete},
}

// Next returns the panel reached from p on e.
func Next(p Panel, e Event) (Panel, error) {
	if to, ok := transitions[p][e]; ok {
		return to, nil
	}
	return p, fmt.Errorf("%w: %s on %s", ErrWrongPanel, e, p)
}
