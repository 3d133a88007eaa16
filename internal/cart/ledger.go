// Package cart holds the per-table cart ledger.
//
// The ledger never reports errors: malformed updates are ignored so that
// every reachable state satisfies the ledger invariants (one entry per item
// id, every quantity at least one).
package cart

import (
	"tableside/internal/model"

	"github.com/shopspring/decimal"
)

// Entry is a single cart line.
type Entry struct {
	Item     model.MenuItem
	Quantity int
	Note     string
}

// LineTotal returns price times quantity for the entry.
func (e Entry) LineTotal() decimal.Decimal {
	return e.Item.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Ledger maps item ids to quantities and notes, preserving insertion order.
// A Ledger is not safe for concurrent use; the owning session serialises access.
type Ledger struct {
	entries []Entry
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Add increments the quantity of the entry for item.ID and overwrites its
// note, or appends a new entry. Non-positive quantities are ignored.
func (l *Ledger) Add(item model.MenuItem, quantity int, note string) {
	if quantity <= 0 {
		return
	}

	if i := l.index(item.ID); i >= 0 {
		l.entries[i].Quantity += quantity
		l.entries[i].Note = note
		return
	}

	l.entries = append(l.entries, Entry{Item: item, Quantity: quantity, Note: note})
}

// SetQuantity overwrites the stored quantity. Zero removes the entry;
// negative quantities and unknown ids are ignored.
func (l *Ledger) SetQuantity(itemID string, quantity int) {
	if quantity < 0 {
		return
	}

	i := l.index(itemID)
	if i < 0 {
		return
	}

	if quantity == 0 {
		l.entries = append(l.entries[:i], l.entries[i+1:]...)
		return
	}

	l.entries[i].Quantity = quantity
}

// Remove deletes the entry for itemID if present.
func (l *Ledger) Remove(itemID string) {
	l.SetQuantity(itemID, 0)
}

// Clear empties the ledger.
func (l *Ledger) Clear() {
	l.entries = nil
}

// Total returns the exact sum of price * quantity over all entries.
func (l *Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range l.entries {
		total = total.Add(e.LineTotal())
	}
	return total
}

// Get returns the entry for itemID.
func (l *Ledger) Get(itemID string) (Entry, bool) {
	if i := l.index(itemID); i >= 0 {
		return l.entries[i], true
	}
	return Entry{}, false
}

// Entries returns a copy of the entries in insertion order.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of distinct entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Count returns the total number of units across entries.
func (l *Ledger) Count() int {
	n := 0
	for _, e := range l.entries {
		n += e.Quantity
	}
	return n
}

// IsEmpty reports whether the ledger has no entries.
func (l *Ledger) IsEmpty() bool {
	return len(l.entries) == 0
}

// Clone returns an independent copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	return &Ledger{entries: l.Entries()}
}

// View renders the ledger for clients.
func (l *Ledger) View() model.CartView {
	lines := make([]model.CartLine, 0, len(l.entries))
	for _, e := range l.entries {
		lines = append(lines, model.CartLine{
			Item:      e.Item,
			Quantity:  e.Quantity,
			Note:      e.Note,
			LineTotal: e.LineTotal(),
		})
	}

	total := l.Total()
	return model.CartView{
		Lines:     lines,
		ItemCount: l.Count(),
		Total:     total,
		Display:   total.StringFixed(2),
	}
}

func (l *Ledger) index(itemID string) int {
	for i, e := range l.entries {
		if e.Item.ID == itemID {
			return i
		}
	}
	return -1
}
