package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Tables that emit change events.
const (
	TableOrders        = "orders"
	TableOrderItems    = "order_items"
	TableNotifications = "notifications"
)

// ChangeType is the kind of row mutation.
type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
)

// EventMask selects which change types a subscriber receives.
type EventMask uint8

const (
	MaskInsert EventMask = 1 << iota
	MaskUpdate
	MaskDelete

	MaskAll = MaskInsert | MaskUpdate | MaskDelete
)

// Has reports whether the mask includes the change type.
func (m EventMask) Has(t ChangeType) bool {
	switch t {
	case ChangeInsert:
		return m&MaskInsert != 0
	case ChangeUpdate:
		return m&MaskUpdate != 0
	case ChangeDelete:
		return m&MaskDelete != 0
	default:
		return false
	}
}

// ChangeEvent describes one committed row mutation. Columns holds the
// filterable column values of the row (for example user_id or student_id).
type ChangeEvent struct {
	ID          uuid.UUID         `json:"id"`
	Table       string            `json:"table"`
	Type        ChangeType        `json:"type"`
	Columns     map[string]string `json:"columns"`
	Record      json.RawMessage   `json:"record,omitempty"`
	CommittedAt time.Time         `json:"committed_at"`
}

// ChangeFilter selects events for one subscription: a table, an optional
// column equality and an event mask.
type ChangeFilter struct {
	Table  string
	Column string
	Value  string
	Mask   EventMask
}

// Matches reports whether the event passes the filter.
func (f ChangeFilter) Matches(event *ChangeEvent) bool {
	if event == nil || event.Table != f.Table {
		return false
	}

	mask := f.Mask
	if mask == 0 {
		mask = MaskAll
	}
	if !mask.Has(event.Type) {
		return false
	}

	if f.Column == "" {
		return true
	}

	return event.Columns[f.Column] == f.Value
}
