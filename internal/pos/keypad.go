package pos

import "possystem/internal/money"

// maxKeypad is the largest buffer the keypad accepts: twelve digits.
const maxKeypad money.Cents = 999_999_999_999

// Keypad is the amount-paid buffer. Digits enter from the right into a fixed
// two-place decimal, so 1, 2, 3 reads 1.23.
type Keypad struct {
	amount money.Cents
}

func (k *Keypad) EnterDigit(d int) error {
	if d < 0 || d > 9 {
		return ErrBadDigit
	}
	next := k.amount*10 + money.Cents(d)
	if next > maxKeypad {
		return nil
	}
	k.amount = next
	return nil
}

// Erase drops the rightmost digit.
func (k *Keypad) Erase() { k.amount /= 10 }

func (k *Keypad) Set(c money.Cents) { k.amount = c }

func (k *Keypad) Reset() { k.amount = 0 }

func (k *Keypad) Amount() money.Cents { return k.amount }

// String renders the buffer as shown in the amount-paid field.
func (k *Keypad) String() string { return k.amount.String() }
