// Package checkout drives the cart-to-order handoff: payment simulation,
// COD surcharge, order creation, and clearing the cart on success.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kaozx001/project-nawatakum/internal/auth"
	"github.com/kaozx001/project-nawatakum/internal/cart"
	"github.com/kaozx001/project-nawatakum/internal/order"
	"github.com/kaozx001/project-nawatakum/pkg/config"
	"github.com/kaozx001/project-nawatakum/pkg/money"
)

var ErrEmptyCart = errors.New("cart is empty")

// PaymentMethod is one of the storefront's simulated payment options.
type PaymentMethod string

const (
	MethodCredit    PaymentMethod = "credit"
	MethodBank      PaymentMethod = "bank"
	MethodPromptPay PaymentMethod = "promptpay"
	MethodCOD       PaymentMethod = "cod"
)

// methodNames maps method ids to the display name recorded on the order.
var methodNames = map[PaymentMethod]string{
	MethodCredit:    "Credit / Debit Card",
	MethodBank:      "Bank Transfer",
	MethodPromptPay: "PromptPay QR",
	MethodCOD:       "Cash on Delivery",
}

// Request is the buyer-entered checkout form. The shipping record is
// required-field validated at this boundary; the order engine itself assumes
// validated input.
type Request struct {
	Shipping      order.Shipping `json:"shipping"`
	PaymentMethod PaymentMethod  `json:"paymentMethod" validate:"required,oneof=credit bank promptpay cod"`
}

// Service executes the checkout flow against the order engine.
type Service struct {
	orders  order.OrderService
	pricing config.PricingConfig
	delay   time.Duration
	logger  *slog.Logger
}

func NewService(orders order.OrderService, pricing config.PricingConfig, delay time.Duration, logger *slog.Logger) *Service {
	return &Service{
		orders:  orders,
		pricing: pricing,
		delay:   delay,
		logger:  logger.With("component", "checkout"),
	}
}

// PlaceOrder runs the simulated payment, snapshots the cart into a new order,
// marks it paid unless paying on delivery, and clears the cart. The cart is
// read after the processing delay, never before, and is only cleared once
// creation has succeeded.
func (s *Service) PlaceOrder(ctx context.Context, actor *auth.User, userCart *cart.Service, req Request) (*order.Order, error) {
	if err := s.simulateProcessing(ctx); err != nil {
		return nil, err
	}

	items := userCart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	summary := userCart.Summary()

	var codFee *money.Money
	total := summary.Total
	if req.PaymentMethod == MethodCOD && s.pricing.CODSurcharge > 0 {
		fee := money.New(s.pricing.CODSurcharge)
		codFee = &fee
		total = money.New(summary.Total.Float() + fee.Float())
	}

	orderItems := make([]order.Item, len(items))
	for i, it := range items {
		orderItems[i] = order.Item{
			ID:       it.ID,
			Name:     it.Name,
			Image:    it.Image,
			Price:    it.Price,
			Quantity: it.Quantity,
		}
	}

	created, err := s.orders.Create(ctx, order.CreateInput{
		UserID:      actor.ID,
		Items:       orderItems,
		Shipping:    req.Shipping,
		Subtotal:    summary.Subtotal,
		ShippingFee: summary.Shipping,
		Tax:         summary.Tax,
		CodFee:      codFee,
		Total:       total,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// COD orders stay pending until the courier collects payment.
	if req.PaymentMethod != MethodCOD {
		paid, err := s.orders.MarkPaid(ctx, actor, created.ID, order.PaymentInfo{
			Method:        methodNames[req.PaymentMethod],
			TransactionID: fmt.Sprintf("TXN-%s", uuid.NewString()),
		})
		if err != nil {
			// The order exists; a failed payment record leaves it pending.
			s.logger.ErrorContext(ctx, "Failed to mark order as paid", "order_id", created.ID, "error", err)
		} else {
			created = paid
		}
	}

	if err := userCart.Clear(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to clear cart after checkout", "order_id", created.ID, "error", err)
	}

	s.logger.InfoContext(ctx, "Checkout completed", "order_id", created.ID, "method", req.PaymentMethod, "total", created.Total.String())
	return created, nil
}

// simulateProcessing stands in for the payment gateway round trip. Once
// started it always completes unless the caller abandons the request.
func (s *Service) simulateProcessing(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
