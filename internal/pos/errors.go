package pos

import "errors"

var (
	ErrNotFound             = errors.New("product not found")
	ErrNotInCart            = errors.New("item not in cart")
	ErrInsufficientPayment  = errors.New("payment insufficient")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrWrongPanel           = errors.New("action not available on this panel")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrBadDigit             = errors.New("keypad digit must be 0-9")
)

// Messages shown in the last-scan display.
const (
	MsgProductNotFound = "ERROR: Product not found"
	MsgLookupFailed    = "ERROR: Product lookup failed"
	MsgItemNotInCart   = "Item not in cart"
)
