package order

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kaozx001/project-nawatakum/internal/auth"
	ordererrors "github.com/kaozx001/project-nawatakum/internal/order/errors"
	"github.com/kaozx001/project-nawatakum/pkg/messaging"
	"github.com/kaozx001/project-nawatakum/pkg/messaging/events"
)

// Collection is the persistence contract the service drives. It matches
// store.OrderStore and is redeclared here to keep the dependency pointing
// outward.
type Collection interface {
	All() []Order
	ByID(id string) (*Order, error)
	ByUser(userID string) []Order
	Prepend(o Order) error
	Replace(o Order) error
	Exists(id string) bool
}

// OrderService defines the operations of the order lifecycle engine.
// Admin-only operations take the acting user and refuse non-admin actors.
type OrderService interface {
	// Create snapshots the input into a new pending order and prepends it to
	// the collection. Input validation is the caller's responsibility.
	Create(ctx context.Context, input CreateInput) (*Order, error)

	// UpdateStatus transitions an order to newStatus and appends the audit
	// entry. Admin only. Returns ErrOrderNotFound for an unknown id.
	UpdateStatus(ctx context.Context, actor *auth.User, id string, newStatus Status, note string) (*Order, error)

	// MarkPaid transitions to paid and records payment info and paidAt.
	// Allowed for the order's owner and admins.
	MarkPaid(ctx context.Context, actor *auth.User, id string, payment PaymentInfo) (*Order, error)

	// Cancel transitions to cancelled from any status, completed included.
	// Allowed for the order's owner and admins.
	Cancel(ctx context.Context, actor *auth.User, id string, reason string) (*Order, error)

	// ByID returns one order. Owners see their own orders; admins see all.
	ByID(ctx context.Context, actor *auth.User, id string) (*Order, error)

	// UserOrders returns the orders belonging to userID.
	UserOrders(ctx context.Context, userID string) []Order

	// All returns the whole collection. Admin only.
	All(ctx context.Context, actor *auth.User) ([]Order, error)

	// Stats folds the collection into dashboard counts and revenue,
	// recomputed from scratch on every call. Admin only.
	Stats(ctx context.Context, actor *auth.User) (*Stats, error)
}

// Service implements OrderService on top of a Collection.
type Service struct {
	orders    Collection
	publisher messaging.Publisher
	logger    *slog.Logger
}

func NewService(orders Collection, publisher messaging.Publisher, logger *slog.Logger) *Service {
	return &Service{
		orders:    orders,
		publisher: publisher,
		logger:    logger.With("component", "orders"),
	}
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Order, error) {
	now := time.Now().UTC()

	// Frozen copy: later mutation of the caller's slice must not reach the
	// stored order.
	items := make([]Item, len(input.Items))
	copy(items, input.Items)

	o := Order{
		ID:          s.nextID(now),
		UserID:      input.UserID,
		Items:       items,
		Shipping:    input.Shipping,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
		Subtotal:    input.Subtotal,
		ShippingFee: input.ShippingFee,
		Tax:         input.Tax,
		CodFee:      input.CodFee,
		Total:       input.Total,
		StatusHistory: []StatusEntry{
			{Status: StatusPending, Timestamp: now, Note: "order created"},
		},
	}
	if err := s.orders.Prepend(o); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Order created", "order_id", o.ID, "user_id", o.UserID, "total", o.Total.String())

	s.publish(ctx, events.OrderCreatedEvent{
		OrderID:   o.ID,
		UserID:    o.UserID,
		Total:     o.Total.String(),
		CreatedAt: o.CreatedAt,
	})
	return o.clone(), nil
}

func (s *Service) UpdateStatus(ctx context.Context, actor *auth.User, id string, newStatus Status, note string) (*Order, error) {
	if !actor.IsAdmin() {
		return nil, ordererrors.ErrPermissionDenied
	}
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: %s", ordererrors.ErrInvalidStatus, newStatus)
	}
	if note == "" {
		note = newStatus.Label()
	}
	return s.transition(ctx, id, newStatus, note, nil)
}

func (s *Service) MarkPaid(ctx context.Context, actor *auth.User, id string, payment PaymentInfo) (*Order, error) {
	o, err := s.orders.ByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && (actor == nil || actor.ID != o.UserID) {
		return nil, ordererrors.ErrPermissionDenied
	}
	note := fmt.Sprintf("paid via %s", payment.Method)
	return s.transition(ctx, id, StatusPaid, note, &payment)
}

func (s *Service) Cancel(ctx context.Context, actor *auth.User, id string, reason string) (*Order, error) {
	o, err := s.orders.ByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && (actor == nil || actor.ID != o.UserID) {
		return nil, ordererrors.ErrPermissionDenied
	}
	if reason == "" {
		reason = "user cancelled"
	}
	// No guard on the current status: cancelling a completed order is
	// allowed, matching the storefront's observed behavior.
	return s.transition(ctx, id, StatusCancelled, reason, nil)
}

func (s *Service) ByID(ctx context.Context, actor *auth.User, id string) (*Order, error) {
	o, err := s.orders.ByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && (actor == nil || actor.ID != o.UserID) {
		return nil, ordererrors.ErrPermissionDenied
	}
	return o.clone(), nil
}

func (s *Service) UserOrders(_ context.Context, userID string) []Order {
	list := s.orders.ByUser(userID)
	out := make([]Order, len(list))
	for i := range list {
		out[i] = *list[i].clone()
	}
	return out
}

func (s *Service) All(_ context.Context, actor *auth.User) ([]Order, error) {
	if !actor.IsAdmin() {
		return nil, ordererrors.ErrPermissionDenied
	}
	return s.orders.All(), nil
}

func (s *Service) Stats(_ context.Context, actor *auth.User) (*Stats, error) {
	if !actor.IsAdmin() {
		return nil, ordererrors.ErrPermissionDenied
	}

	stats := &Stats{}
	for _, o := range s.orders.All() {
		stats.Total++
		switch o.Status {
		case StatusPending:
			stats.Pending++
		case StatusPaid:
			stats.Paid++
		case StatusPreparing:
			stats.Preparing++
		case StatusShipping:
			stats.Shipping++
		case StatusCompleted:
			stats.Completed++
		case StatusCancelled:
			stats.Cancelled++
		}
		if o.Status != StatusCancelled {
			stats.TotalRevenue += o.Total.Float()
		}
	}
	return stats, nil
}

// transition applies a status change: sets the new status, bumps updatedAt,
// appends exactly one audit entry, and persists the collection.
func (s *Service) transition(ctx context.Context, id string, newStatus Status, note string, payment *PaymentInfo) (*Order, error) {
	o, err := s.orders.ByID(id)
	if err != nil {
		s.logger.WarnContext(ctx, "Status update for unknown order", "order_id", id, "status", newStatus)
		return nil, err
	}

	now := time.Now().UTC()
	updated := o.clone()
	updated.Status = newStatus
	updated.UpdatedAt = now
	updated.StatusHistory = append(updated.StatusHistory, StatusEntry{
		Status:    newStatus,
		Timestamp: now,
		Note:      note,
	})
	if payment != nil {
		p := *payment
		updated.PaymentInfo = &p
		updated.PaidAt = &now
	}

	if err := s.orders.Replace(*updated); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Order status updated", "order_id", id, "status", newStatus, "note", note)

	s.publish(ctx, events.OrderStatusChangedEvent{
		OrderID:   id,
		Status:    string(newStatus),
		Note:      note,
		ChangedAt: now,
	})
	return updated.clone(), nil
}

// nextID derives a creation-time-based id, bumping a suffix until it is
// unique within the collection.
func (s *Service) nextID(now time.Time) string {
	base := fmt.Sprintf("ORD-%d", now.UnixMilli())
	id := base
	for i := 1; s.orders.Exists(id); i++ {
		id = fmt.Sprintf("%s-%d", base, i)
	}
	return id
}

// publish sends an event best-effort; failures are logged, never returned.
func (s *Service) publish(ctx context.Context, event messaging.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish storefront event", "subject", event.Subject(), "error", err)
	}
}
