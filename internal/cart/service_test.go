package cart

import (
	"io"
	"log/slog"
	"testing"

	"github.com/kaozx001/project-nawatakum/pkg/config"
	"github.com/kaozx001/project-nawatakum/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCart(t *testing.T) (*Service, storage.KV) {
	t.Helper()
	kv := storage.NewMemoryKV()
	svc, err := NewService(kv, DefaultKey, config.DefaultPricing(), testLogger())
	require.NoError(t, err)
	return svc, kv
}

var gpu = Product{ID: "1", Name: "NVIDIA GeForce RTX 4090", Image: "gpu.jpg", Price: "฿1,990"}
var laptop = Product{ID: "2", Name: "MacBook Pro 16\"", Image: "mbp.jpg", Price: "฿2,500"}

func Test_Add_NewAndIncrement(t *testing.T) {
	svc, _ := newTestCart(t)

	require.NoError(t, svc.Add(gpu, 2))
	require.NoError(t, svc.Add(laptop, 1))
	// A second add for the same product must merge, not append.
	require.NoError(t, svc.Add(gpu, 3))

	items := svc.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ID, "insertion order must be preserved")
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
}

func Test_Add_NonPositiveQuantityIsNoop(t *testing.T) {
	svc, _ := newTestCart(t)

	require.NoError(t, svc.Add(gpu, 0))
	require.NoError(t, svc.Add(gpu, -2))
	assert.Empty(t, svc.Items())
}

func Test_Add_SnapshotsProduct(t *testing.T) {
	svc, _ := newTestCart(t)

	p := gpu
	require.NoError(t, svc.Add(p, 1))
	p.Price = "฿9,999"

	items := svc.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "฿1,990", items[0].Price, "cart keeps the snapshot taken at add time")
}

func Test_Remove_Idempotent(t *testing.T) {
	svc, _ := newTestCart(t)

	require.NoError(t, svc.Add(gpu, 2))
	require.NoError(t, svc.Add(laptop, 1))

	require.NoError(t, svc.Remove("1"))
	afterOnce := svc.Items()
	require.NoError(t, svc.Remove("1"))
	afterTwice := svc.Items()

	assert.Equal(t, afterOnce, afterTwice)
	require.Len(t, afterTwice, 1)
	assert.Equal(t, "2", afterTwice[0].ID)
}

func Test_SetQuantity(t *testing.T) {
	svc, _ := newTestCart(t)
	require.NoError(t, svc.Add(gpu, 2))

	require.NoError(t, svc.SetQuantity("1", 7))
	assert.Equal(t, 7, svc.Items()[0].Quantity, "set is absolute, not a delta")

	// Unknown id is a silent no-op.
	require.NoError(t, svc.SetQuantity("missing", 3))
	require.Len(t, svc.Items(), 1)
}

func Test_SetQuantityZero_MatchesRemove(t *testing.T) {
	viaSet, _ := newTestCart(t)
	viaRemove, _ := newTestCart(t)
	for _, svc := range []*Service{viaSet, viaRemove} {
		require.NoError(t, svc.Add(gpu, 2))
		require.NoError(t, svc.Add(laptop, 1))
	}

	require.NoError(t, viaSet.SetQuantity("1", 0))
	require.NoError(t, viaRemove.Remove("1"))

	assert.Equal(t, viaRemove.Items(), viaSet.Items())
}

func Test_Clear(t *testing.T) {
	svc, _ := newTestCart(t)
	require.NoError(t, svc.Add(gpu, 2))

	require.NoError(t, svc.Clear())
	assert.Empty(t, svc.Items())
	assert.Equal(t, 0, svc.Count())
	assert.Equal(t, 0.0, svc.Subtotal())
}

func Test_CountAndSubtotal(t *testing.T) {
	svc, _ := newTestCart(t)

	// Empty cart derives zeros.
	assert.Equal(t, 0, svc.Count())
	assert.Equal(t, 0.0, svc.Subtotal())

	require.NoError(t, svc.Add(gpu, 2))
	assert.Equal(t, 2, svc.Count())
	assert.Equal(t, 3980.0, svc.Subtotal())
}

func Test_Summary(t *testing.T) {
	testCases := []struct {
		name             string
		quantity         int
		unitPrice        string
		expectedShipping float64
	}{
		{name: "below free shipping threshold", quantity: 1, unitPrice: "฿4,999", expectedShipping: 150},
		{name: "exactly at threshold", quantity: 1, unitPrice: "฿5,000", expectedShipping: 0},
		{name: "above threshold", quantity: 2, unitPrice: "฿3,000", expectedShipping: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newTestCart(t)
			require.NoError(t, svc.Add(Product{ID: "p", Price: tc.unitPrice}, tc.quantity))

			summary := svc.Summary()
			subtotal := summary.Subtotal.Float()
			assert.Equal(t, tc.expectedShipping, summary.Shipping.Float())
			assert.Equal(t, subtotal*0.07, summary.Tax.Float())
			assert.Equal(t, subtotal+summary.Shipping.Float()+summary.Tax.Float(), summary.Total.Float())
			assert.Equal(t, tc.quantity, summary.ItemCount)
		})
	}
}

func Test_Persistence_SurvivesReload(t *testing.T) {
	svc, kv := newTestCart(t)
	require.NoError(t, svc.Add(gpu, 2))
	require.NoError(t, svc.Add(laptop, 1))

	reloaded, err := NewService(kv, DefaultKey, config.DefaultPricing(), testLogger())
	require.NoError(t, err)
	assert.Equal(t, svc.Items(), reloaded.Items())
}

func Test_Load_CorruptCartIsEmpty(t *testing.T) {
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Save(DefaultKey, "not a cart"))

	svc, err := NewService(kv, DefaultKey, config.DefaultPricing(), testLogger())
	require.NoError(t, err)
	assert.Empty(t, svc.Items())
}

func Test_Registry_PerUserCarts(t *testing.T) {
	kv := storage.NewMemoryKV()
	reg := NewRegistry(kv, config.DefaultPricing(), testLogger())

	a, err := reg.ForUser("u1")
	require.NoError(t, err)
	b, err := reg.ForUser("u2")
	require.NoError(t, err)

	require.NoError(t, a.Add(gpu, 1))
	assert.Empty(t, b.Items(), "carts never leak across users")

	// Same user resolves to the same cart instance.
	again, err := reg.ForUser("u1")
	require.NoError(t, err)
	assert.Same(t, a, again)
	assert.Equal(t, 1, again.Count())
}
