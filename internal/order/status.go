package order

import "fmt"

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusPreparing Status = "preparing"
	StatusShipping  Status = "shipping"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// StatusMeta carries the presentation fields attached to each status. They
// are pass-through data for the UI, not engine logic.
type StatusMeta struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// Statuses maps every defined status to its presentation metadata. The happy
// path runs pending → paid → preparing → shipping → completed; cancelled is
// reachable from any status, completed included.
var Statuses = map[Status]StatusMeta{
	StatusPending:   {Label: "Awaiting payment", Color: "#ffd700", Icon: "⏳"},
	StatusPaid:      {Label: "Paid", Color: "#00ff88", Icon: "💳"},
	StatusPreparing: {Label: "Preparing", Color: "#00d4ff", Icon: "📦"},
	StatusShipping:  {Label: "Shipping", Color: "#b967ff", Icon: "🚚"},
	StatusCompleted: {Label: "Delivered", Color: "#00ff88", Icon: "✅"},
	StatusCancelled: {Label: "Cancelled", Color: "#ff4466", Icon: "❌"},
}

// Valid reports whether s is one of the six defined statuses.
func (s Status) Valid() bool {
	_, ok := Statuses[s]
	return ok
}

// Label returns the display label, or the raw value for an unknown status.
func (s Status) Label() string {
	if meta, ok := Statuses[s]; ok {
		return meta.Label
	}
	return string(s)
}

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown order status: %q", raw)
	}
	return s, nil
}
