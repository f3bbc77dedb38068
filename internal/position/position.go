package position

import "main/internal/schema"

// Manager tracks the net signed position and the net hedge lot count for
// one strategy instance, enforcing the position limit on every fill.
type Manager struct {
	limit    schema.Quantity
	position schema.Quantity
	hedged   schema.Quantity
}

// NewManager creates a flat manager with the given position limit.
func NewManager(limit schema.Quantity) *Manager {
	return &Manager{limit: limit}
}

// Position returns the current net position in lots.
func (m *Manager) Position() schema.Quantity {
	return m.position
}

// Hedged returns the net hedge lot count (positive when net bought on the
// hedge instrument).
func (m *Manager) Hedged() schema.Quantity {
	return m.hedged
}

// Limit returns the configured position limit.
func (m *Manager) Limit() schema.Quantity {
	return m.limit
}

// ApplyBuy applies a bid fill. The position moves only when both the new
// position and the new position net of hedges stay within the limit; the
// return value reports whether it was applied. A failed guard leaves the
// stated position unchanged rather than rejecting the fill.
func (m *Manager) ApplyBuy(volume schema.Quantity) bool {
	next := m.position + volume
	if abs(next) > m.limit || abs(next-m.hedged) > m.limit {
		return false
	}
	m.position = next
	return true
}

// ApplySell applies an ask fill under the same guard, with the hedge count
// entering on the opposite side.
func (m *Manager) ApplySell(volume schema.Quantity) bool {
	next := m.position - volume
	if abs(next) > m.limit || abs(next+m.hedged) > m.limit {
		return false
	}
	m.position = next
	return true
}

// ApplyHedgeFill folds a hedge fill into the net hedge count.
func (m *Manager) ApplyHedgeFill(side schema.Side, volume schema.Quantity) {
	switch side {
	case schema.SideBuy:
		m.hedged += volume
	case schema.SideSell:
		m.hedged -= volume
	}
}

func abs(q schema.Quantity) schema.Quantity {
	if q < 0 {
		return -q
	}
	return q
}
