package pos

import (
	"fmt"
	"strings"
	"time"

	"possystem/internal/money"
)

type ReceiptLine struct {
	Name     string
	Quantity int
	Price    string // quantity x unit price
}

// Receipt is the display-only view of a finalized sale.
type Receipt struct {
	StoreName    string
	StoreAddress string
	Number       string
	Cashier      string
	Date         string
	Lines        []ReceiptLine
	Total        string
	Paid         string
	Balance      string
	Footer       []string
}

// Title is the receipt window caption.
func (r Receipt) Title() string {
	return fmt.Sprintf("Receipt #%s. Press Enter to close", r.Number)
}

// Completion fills the completion panel.
type Completion struct {
	Date      string
	Time      string
	ReceiptNo string
	Total     string
	Paid      string
	Balance   string
	// PersistErr is set when the sale could not be written. The panel
	// still shows; only the operator log reports it.
	PersistErr error
}

// Sale is the in-memory snapshot of a finalized transaction.
type Sale struct {
	Number  string
	At      time.Time
	Cashier string
	Lines   []Line
	Total   money.Cents
	Paid    money.Cents
}

func (s Sale) Balance() money.Cents { return s.Paid - s.Total }

func dmy(t time.Time) string { return fmt.Sprintf("%d-%d-%d", t.Day(), int(t.Month()), t.Year()) }

func hms(t time.Time) string { return fmt.Sprintf("%d:%d:%d", t.Hour(), t.Minute(), t.Second()) }

// RenderReceipt builds the itemized receipt for s.
func RenderReceipt(s Sale, opts Options) Receipt {
	r := Receipt{
		StoreName:    opts.StoreName,
		StoreAddress: opts.StoreAddress,
		Number:       s.Number,
		Cashier:      s.Cashier,
		Date:         dmy(s.At),
		Total:        s.Total.Label(opts.Currency),
		Paid:         s.Paid.Label(opts.Currency),
		Balance:      s.Balance().Label(opts.Currency),
	}
	for _, l := range s.Lines {
		r.Lines = append(r.Lines, ReceiptLine{Name: l.Name, Quantity: l.Quantity, Price: l.Subtotal().String()})
	}
	if opts.Footer != "" {
		r.Footer = strings.Split(opts.Footer, "\n")
	}
	return r
}

func newCompletion(s Sale, currency string, persistErr error) Completion {
	label := func(c money.Cents) string { return currency + " " + c.String() }
	return Completion{
		Date:       dmy(s.At),
		Time:       hms(s.At),
		ReceiptNo:  s.Number,
		Total:      label(s.Total),
		Paid:       label(s.Paid),
		Balance:    label(s.Balance()),
		PersistErr: persistErr,
	}
}
