package checkout

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/kaozx001/project-nawatakum/internal/auth"
	"github.com/kaozx001/project-nawatakum/internal/cart"
	"github.com/kaozx001/project-nawatakum/internal/order"
	orderstore "github.com/kaozx001/project-nawatakum/internal/order/store"
	"github.com/kaozx001/project-nawatakum/pkg/config"
	"github.com/kaozx001/project-nawatakum/pkg/messaging"
	"github.com/kaozx001/project-nawatakum/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shipping = order.Shipping{
	FullName:   "Demo User",
	Email:      "demo@jaktech.com",
	Phone:      "0812345678",
	Address:    "123 Sukhumvit Rd",
	City:       "Bangkok",
	PostalCode: "10110",
}

func newTestCheckout(t *testing.T) (*Service, *cart.Service, order.OrderService) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	kv := storage.NewMemoryKV()

	orders, err := orderstore.NewKVStore(kv)
	require.NoError(t, err)
	orderSvc := order.NewService(orders, messaging.NoopPublisher{}, logger)

	userCart, err := cart.NewService(kv, cart.DefaultKey, config.DefaultPricing(), logger)
	require.NoError(t, err)

	svc := NewService(orderSvc, config.DefaultPricing(), 0, logger)
	return svc, userCart, orderSvc
}

func fillCart(t *testing.T, c *cart.Service) {
	t.Helper()
	// 2 x 1,990 = 3,980: below the free-shipping threshold.
	require.NoError(t, c.Add(cart.Product{ID: "1", Name: "GPU", Price: "฿1,990"}, 2))
}

func Test_PlaceOrder_Card(t *testing.T) {
	svc, userCart, _ := newTestCheckout(t)
	fillCart(t, userCart)
	actor := &auth.User{ID: "u1", Role: auth.RoleUser}

	placed, err := svc.PlaceOrder(context.Background(), actor, userCart, Request{
		Shipping:      shipping,
		PaymentMethod: MethodCredit,
	})
	require.NoError(t, err)

	assert.Equal(t, order.StatusPaid, placed.Status)
	assert.Equal(t, "u1", placed.UserID)
	require.NotNil(t, placed.PaymentInfo)
	assert.Equal(t, "Credit / Debit Card", placed.PaymentInfo.Method)
	assert.True(t, strings.HasPrefix(placed.PaymentInfo.TransactionID, "TXN-"))
	require.NotNil(t, placed.PaidAt)
	assert.Nil(t, placed.CodFee)

	assert.InDelta(t, 3980.0, placed.Subtotal.Float(), 1e-9)
	assert.InDelta(t, 150.0, placed.ShippingFee.Float(), 1e-9)
	assert.InDelta(t, 3980*0.07, placed.Tax.Float(), 1e-9)
	assert.InDelta(t, 3980+150+3980*0.07, placed.Total.Float(), 1e-9)

	assert.Empty(t, userCart.Items(), "cart is cleared once the order exists")
}

func Test_PlaceOrder_COD(t *testing.T) {
	svc, userCart, _ := newTestCheckout(t)
	fillCart(t, userCart)
	actor := &auth.User{ID: "u1", Role: auth.RoleUser}

	placed, err := svc.PlaceOrder(context.Background(), actor, userCart, Request{
		Shipping:      shipping,
		PaymentMethod: MethodCOD,
	})
	require.NoError(t, err)

	// COD stays pending and carries the collection surcharge.
	assert.Equal(t, order.StatusPending, placed.Status)
	assert.Nil(t, placed.PaymentInfo)
	assert.Nil(t, placed.PaidAt)
	require.NotNil(t, placed.CodFee)
	assert.InDelta(t, 50.0, placed.CodFee.Float(), 1e-9)
	assert.InDelta(t, 3980+150+3980*0.07+50, placed.Total.Float(), 1e-9)
	assert.Empty(t, userCart.Items())
}

func Test_PlaceOrder_EmptyCart(t *testing.T) {
	svc, userCart, _ := newTestCheckout(t)
	actor := &auth.User{ID: "u1", Role: auth.RoleUser}

	_, err := svc.PlaceOrder(context.Background(), actor, userCart, Request{
		Shipping:      shipping,
		PaymentMethod: MethodCredit,
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func Test_PlaceOrder_OrderIsQueryable(t *testing.T) {
	svc, userCart, orders := newTestCheckout(t)
	fillCart(t, userCart)
	actor := &auth.User{ID: "u1", Role: auth.RoleUser}

	placed, err := svc.PlaceOrder(context.Background(), actor, userCart, Request{
		Shipping:      shipping,
		PaymentMethod: MethodPromptPay,
	})
	require.NoError(t, err)

	got, err := orders.ByID(context.Background(), actor, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, got.ID)
	require.Len(t, got.StatusHistory, 2, "created then paid")
}

func Test_PlaceOrder_CancelledContext(t *testing.T) {
	svc, userCart, _ := newTestCheckout(t)
	fillCart(t, userCart)
	svc.delay = 50 * time.Millisecond
	actor := &auth.User{ID: "u1", Role: auth.RoleUser}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.PlaceOrder(ctx, actor, userCart, Request{
		Shipping:      shipping,
		PaymentMethod: MethodCredit,
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotEmpty(t, userCart.Items(), "abandoned checkout leaves the cart intact")
}
