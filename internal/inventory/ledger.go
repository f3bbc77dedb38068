package inventory

import "main/internal/schema"

// Ledger records per-order cost basis for profit-taking decisions. Long
// entries come from bid fills (lots bought), short entries from ask fills
// (lots sold). Entries are keyed by order id and keep the first recorded
// cost basis for that id.
type Ledger struct {
	long  map[uint64]schema.Price
	short map[uint64]schema.Price
	lots  map[uint64]schema.Quantity
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		long:  make(map[uint64]schema.Price),
		short: make(map[uint64]schema.Price),
		lots:  make(map[uint64]schema.Quantity),
	}
}

// RecordLong stores the cost basis of a bid fill. The first fill for an id
// wins; later partial fills do not move the basis.
func (l *Ledger) RecordLong(orderID uint64, cost schema.Price) {
	if _, ok := l.long[orderID]; !ok {
		l.long[orderID] = cost
	}
}

// RecordShort stores the cost basis of an ask fill, first fill wins.
func (l *Ledger) RecordShort(orderID uint64, cost schema.Price) {
	if _, ok := l.short[orderID]; !ok {
		l.short[orderID] = cost
	}
}

// RecordLots stores the filled lot count for an id, first fill wins. Status
// updates overwrite it via SetLots.
func (l *Ledger) RecordLots(orderID uint64, lots schema.Quantity) {
	if _, ok := l.lots[orderID]; !ok {
		l.lots[orderID] = lots
	}
}

// SetLots overwrites the remaining lot count reported by a status update.
func (l *Ledger) SetLots(orderID uint64, lots schema.Quantity) {
	l.lots[orderID] = lots
}

// ApplyFees folds a status-update fee into the cost basis: the long entry
// moves up by the fee, the short entry down. Both ledgers are touched
// unconditionally; only the entry matching the order's side carries
// meaning for profit-taking.
func (l *Ledger) ApplyFees(orderID uint64, fees schema.Fee) {
	l.long[orderID] += schema.Price(fees)
	l.short[orderID] -= schema.Price(fees)
}

// EachLong calls fn for every long entry.
func (l *Ledger) EachLong(fn func(orderID uint64, cost schema.Price)) {
	for id, cost := range l.long {
		fn(id, cost)
	}
}

// EachShort calls fn for every short entry.
func (l *Ledger) EachShort(fn func(orderID uint64, cost schema.Price)) {
	for id, cost := range l.short {
		fn(id, cost)
	}
}

// Lots returns the recorded lot count for an id, zero when unknown.
func (l *Ledger) Lots(orderID uint64) schema.Quantity {
	return l.lots[orderID]
}
