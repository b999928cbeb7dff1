package pos

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"possystem/internal/domain"
	"possystem/internal/money"
	"possystem/internal/validate"
)

// ProductLookup finds reference products. A miss is ErrNotFound or sql.ErrNoRows.
type ProductLookup interface {
	ByBarcode(ean13 string) (domain.Product, error)
}

// TransactionStore persists a finalized sale as one unit.
type TransactionStore interface {
	Save(t domain.Transaction) error
}

// Confirm asks the cashier a yes/no question.
type Confirm func(prompt string) bool

const (
	PromptClearCart = "Are you sure you want to clear the cart?"
	PromptLogout    = "Are you sure you want to log out?"

	LabelScanAdd    = "Scan item to add:"
	LabelScanRemove = "Scan item to remove:"
)

type Options struct {
	Currency     string
	StoreName    string
	StoreAddress string
	Footer       string
	// Now is the clock; transaction ids come from its Unix seconds.
	Now func() time.Time
}

// Terminal is one logged-in cashier's cart and payment state machine.
// It is not safe for concurrent use; callers serialise access.
type Terminal struct {
	Username string
	FullName string

	products ProductLookup
	store    TransactionStore
	opts     Options

	panel     Panel
	cart      *Cart
	keypad    Keypad
	removal   bool
	lastScan  string
	itemPrice money.Cents
	due       money.Cents
	paid      money.Cents
	txNo      int64

	sale       *Sale
	completion *Completion
}

func NewTerminal(username, fullName string, products ProductLookup, store TransactionStore, opts Options) *Terminal {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Terminal{
		Username: username,
		FullName: fullName,
		products: products,
		store:    store,
		opts:     opts,
		panel:    PanelEntry,
		cart:     NewCart(),
	}
}

func (t *Terminal) Panel() Panel { return t.panel }

func (t *Terminal) Cart() *Cart { return t.cart }

func (t *Terminal) Removal() bool { return t.removal }

func (t *Terminal) LastScan() string { return t.lastScan }

func (t *Terminal) Paid() money.Cents { return t.paid }

func (t *Terminal) AmountEntered() string { return t.keypad.String() }

func (t *Terminal) require(p Panel) error {
	if t.panel != p {
		return fmt.Errorf("%w: on %s, need %s", ErrWrongPanel, t.panel, p)
	}
	return nil
}

func (t *Terminal) fire(e Event) error {
	to, err := Next(t.panel, e)
	if err != nil {
		return err
	}
	t.panel = to
	return nil
}

// Scan adds one unit of the product with this barcode, or takes one off
// when removal mode is on.
func (t *Terminal) Scan(barcode string) error {
	if err := t.require(PanelEntry); err != nil {
		return err
	}
	barcode = strings.TrimSpace(barcode)
	if t.removal {
		return t.removeScan(barcode)
	}

	if !validate.Barcode(barcode) {
		t.lastScan = MsgProductNotFound
		return ErrNotFound
	}
	p, err := t.products.ByBarcode(barcode)
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, ErrNotFound) {
		t.lastScan = MsgProductNotFound
		return ErrNotFound
	}
	if err != nil {
		t.lastScan = MsgLookupFailed
		return fmt.Errorf("lookup %s: %w", barcode, err)
	}

	l := t.cart.Add(p)
	t.lastScan = l.Name
	t.itemPrice = l.UnitPrice
	return nil
}

// removeScan matches on the barcode stored in the cart, not reference data.
func (t *Terminal) removeScan(barcode string) error {
	if _, ok := t.cart.RemoveByBarcode(barcode); !ok {
		t.lastScan = MsgItemNotInCart
		return ErrNotInCart
	}
	return nil
}

// ToggleRemoval flips removal mode and returns the new mode.
func (t *Terminal) ToggleRemoval() (bool, error) {
	if err := t.require(PanelEntry); err != nil {
		return t.removal, err
	}
	t.removal = !t.removal
	return t.removal, nil
}

// Clear empties the cart. Unless forced, confirm must approve; a nil
// confirm without force returns ErrConfirmationRequired.
func (t *Terminal) Clear(force bool, confirm Confirm) (bool, error) {
	if err := t.require(PanelEntry); err != nil {
		return false, err
	}
	if !force {
		if confirm == nil {
			return false, ErrConfirmationRequired
		}
		if !confirm(PromptClearCart) {
			return false, nil
		}
	}
	t.reset()
	return true, nil
}

func (t *Terminal) reset() {
	t.cart.Clear()
	t.paid = 0
	t.txNo = 0
	t.due = 0
	t.lastScan = ""
	t.itemPrice = 0
}

// OpenPayment moves to the keypad. A zero total cannot be paid.
func (t *Terminal) OpenPayment() error {
	if err := t.require(PanelEntry); err != nil {
		return err
	}
	if t.cart.Total() <= 0 {
		return ErrEmptyCart
	}
	if err := t.fire(EventPay); err != nil {
		return err
	}
	t.due = t.cart.Total()
	t.keypad.Reset()
	return nil
}

// Back leaves the keypad without touching the cart.
func (t *Terminal) Back() error {
	if err := t.fire(EventBack); err != nil {
		return err
	}
	t.keypad.Reset()
	return nil
}

func (t *Terminal) EnterDigit(d int) error {
	if err := t.require(PanelPaymentKeypad); err != nil {
		return err
	}
	return t.keypad.EnterDigit(d)
}

func (t *Terminal) EraseDigit() error {
	if err := t.require(PanelPaymentKeypad); err != nil {
		return err
	}
	t.keypad.Erase()
	return nil
}

// ExactAmount enters the total due and confirms at once.
func (t *Terminal) ExactAmount() (*Completion, error) {
	if err := t.require(PanelPaymentKeypad); err != nil {
		return nil, err
	}
	t.keypad.Set(t.due)
	return t.ConfirmPayment()
}

// ConfirmPayment finalizes the sale when the entered amount covers the
// total due. A failed write does not stop the sale: the completion panel
// is shown and Completion.PersistErr carries the failure.
func (t *Terminal) ConfirmPayment() (*Completion, error) {
	if err := t.require(PanelPaymentKeypad); err != nil {
		return nil, err
	}
	amount := t.keypad.Amount()
	if amount < t.due {
		return nil, ErrInsufficientPayment
	}

	now := t.opts.Now()
	t.paid = amount
	// second resolution: two sales within one second share an id
	t.txNo = now.Unix()
	sale := Sale{
		Number:  strconv.FormatInt(t.txNo, 10),
		At:      now,
		Cashier: t.FullName,
		Lines:   t.cart.Lines(),
		Total:   t.due,
		Paid:    t.paid,
	}

	persistErr := t.store.Save(transactionFor(sale, t.Username))

	if err := t.fire(EventPaid); err != nil {
		return nil, err
	}
	c := newCompletion(sale, t.opts.Currency, persistErr)
	t.sale = &sale
	t.completion = &c
	return t.completion, nil
}

func transactionFor(s Sale, username string) domain.Transaction {
	tx := domain.Transaction{
		ID:       s.Number,
		Date:     s.At.Format("2006-01-02"),
		Total:    s.Total.Decimal(),
		Username: username,
	}
	for _, l := range s.Lines {
		tx.Items = append(tx.Items, domain.TransactionItem{
			Name:          l.Name,
			Quantity:      l.Quantity,
			PricePerUnit:  l.UnitPrice.Decimal(),
			Barcode:       l.Barcode,
			TransactionID: s.Number,
		})
	}
	return tx
}

// Receipt renders the held snapshot of the last sale. Reprinting never
// goes back to the store.
func (t *Terminal) Receipt() (Receipt, error) {
	if t.sale == nil {
		return Receipt{}, fmt.Errorf("%w: no completed sale", ErrWrongPanel)
	}
	if _, err := Next(t.panel, EventReprint); err != nil {
		return Receipt{}, err
	}
	return RenderReceipt(*t.sale, t.opts), nil
}

// NewTransaction clears everything and returns to the entry panel.
func (t *Terminal) NewTransaction() error {
	if err := t.fire(EventNewTransaction); err != nil {
		return err
	}
	t.reset()
	t.keypad.Reset()
	t.sale = nil
	t.completion = nil
	return nil
}

// Keys recognised by HandleKey.
const (
	KeyBackspace = "Backspace"
	KeyEnter     = "Enter"
	KeyPay       = "Ctrl+P"
)

// HandleKey maps a keyboard shortcut onto the matching button. Keys with no
// meaning on the current panel are ignored.
func (t *Terminal) HandleKey(key string) error {
	switch {
	case len(key) == 1 && key[0] >= '0' && key[0] <= '9':
		if t.panel != PanelPaymentKeypad {
			return nil
		}
		return t.EnterDigit(int(key[0] - '0'))
	case key == KeyBackspace:
		if t.panel != PanelPaymentKeypad {
			return nil
		}
		return t.EraseDigit()
	case key == KeyEnter:
		switch t.panel {
		case PanelPaymentKeypad:
			_, err := t.ConfirmPayment()
			return err
		case PanelComplete:
			return t.NewTransaction()
		}
	case key == KeyPay:
		if t.panel == PanelEntry {
			return t.OpenPayment()
		}
	}
	return nil
}

// Close discards all state when the cashier logs out.
func (t *Terminal) Close() {
	t.reset()
	t.keypad.Reset()
	t.sale = nil
	t.completion = nil
	t.panel = PanelEntry
}

// View projects the current state for rendering.
func (t *Terminal) View() View {
	label := LabelScanAdd
	if t.removal {
		label = LabelScanRemove
	}
	return View{
		Panel:      t.panel,
		Cashier:    "Mr. " + t.FullName,
		Rows:       Table(t.cart),
		LastScan:   t.lastScan,
		ItemPrice:  t.itemPrice.String(),
		Total:      t.cart.Total().String(),
		Removal:    t.removal,
		ScanLabel:  label,
		AmountDue:  fmt.Sprintf("Total: %s %s", t.opts.Currency, t.due.String()),
		AmountPaid: t.keypad.String(),
		Completion: t.completion,
		HasReceipt: t.sale != nil,
	}
}
