package pos

// Row is one line of the on-screen cart table.
type Row struct {
	Name     string
	Quantity int
	Price    string
}

// Table projects the cart into table rows. It is recomputed from the cart
// on every render, so rows cannot drift from cart state.
func Table(c *Cart) []Row {
	lines := c.Lines()
	rows := make([]Row, len(lines))
	for i, l := range lines {
		rows[i] = Row{Name: l.Name, Quantity: l.Quantity, Price: l.Subtotal().String()}
	}
	return rows
}

// View is everything the cashier page needs to draw the current state.
type View struct {
	Panel      Panel
	Cashier    string
	Rows       []Row
	LastScan   string
	ItemPrice  string
	Total      string
	Removal    bool
	ScanLabel  string
	AmountDue  string
	AmountPaid string
	Completion *Completion
	HasReceipt bool
}

func (v View) Entry() bool         { return v.Panel == PanelEntry }
func (v View) PaymentKeypad() bool { return v.Panel == PanelPaymentKeypad }
func (v View) Complete() bool      { return v.Panel == PanelComplete }
