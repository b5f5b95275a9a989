package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imrishuroy/halfkg-storefront/internal/cart"
	"github.com/imrishuroy/halfkg-storefront/internal/catalog"
	"github.com/imrishuroy/halfkg-storefront/internal/checkout"
	"github.com/imrishuroy/halfkg-storefront/internal/idempotency"
	"github.com/imrishuroy/halfkg-storefront/internal/orders"
)

type harness struct {
	out    *bytes.Buffer
	cart   *cart.Store
	orders *orders.Store
	s      *session
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)

	store := orders.NewStore(nil)
	history, err := orders.LoadHistory(time.UTC)
	require.NoError(t, err)
	require.NoError(t, store.Seed(history))

	c := cart.NewStore(nil)
	svc := checkout.NewService(c, store, idempotency.NewStore(time.Hour, nil), checkout.DefaultDeliveryFee, nil)

	h := &harness{out: &bytes.Buffer{}, cart: c, orders: store}
	h.s = newSession(sessionConfig{
		Catalog:  cat,
		Cart:     c,
		Orders:   store,
		Checkout: svc,
		Out:      h.out,
	})
	t.Cleanup(h.s.Close)
	return h
}

func (h *harness) run(t *testing.T, script ...string) string {
	t.Helper()
	h.out.Reset()
	require.NoError(t, h.s.Run(context.Background(), strings.NewReader(strings.Join(script, "\n")+"\n")))
	return h.out.String()
}

func TestSession_AddUpdatesBadge(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "add 1 2", "add 2", "inc 2", "dec 1")

	assert.Contains(t, out, "[cart: 2 items, ₹240]")
	assert.Contains(t, out, "[cart: 3 items, ₹320]")
	assert.Contains(t, out, "[cart: 4 items, ₹400]")
	assert.Contains(t, out, "[cart: 3 items, ₹280]")
	assert.Equal(t, 1, h.cart.ItemQuantity(1))
	assert.Equal(t, 2, h.cart.ItemQuantity(2))
}

func TestSession_AddRejectsBadQuantity(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "add 1 0", "add 1 100", "add 1 abc", "add 42")

	assert.Contains(t, out, "AddItemRequest.Quantity")
	assert.Contains(t, out, `invalid quantity "abc"`)
	assert.Contains(t, out, "product 42 not found")
	assert.True(t, h.cart.IsEmpty())
}

func TestSession_RemoveAndCart(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "add 3", "add 6 2", "remove 3", "cart")

	assert.Contains(t, out, "Removed Organic Quinoa")
	assert.Contains(t, out, "Brown Rice")
	assert.Contains(t, out, "Total (2 items): ₹300")
	assert.Equal(t, 0, h.cart.ItemQuantity(3))

	out = h.run(t, "remove 3")
	assert.Contains(t, out, "Organic Quinoa is not in the cart")
}

func TestSession_Products(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "products fruits")
	assert.Contains(t, out, "Organic Bananas")
	assert.Contains(t, out, "Organic Apples")
	assert.NotContains(t, out, "Brown Rice")

	out = h.run(t, "products rice")
	assert.Contains(t, out, "Brown Rice")
	assert.NotContains(t, out, "Organic Bananas")

	out = h.run(t, "products dairy")
	assert.Contains(t, out, "No products found")
}

func TestSession_Show(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "show 1")
	assert.Contains(t, out, "Organic Bananas (1kg)")
	assert.Contains(t, out, "₹120  was ₹170")
}

func TestSession_CheckoutAndConfirmTwice(t *testing.T) {
	h := newHarness(t)
	h.s.newKey = func() string { return "key-1" }
	before := h.orders.Len()

	out := h.run(t, "confirm", "add 1 2", "checkout")
	assert.Contains(t, out, "run checkout first")
	assert.Contains(t, out, "Subtotal: ₹240")
	assert.Contains(t, out, "Delivery Fee: ₹50")
	assert.Contains(t, out, "Total: ₹290")
	assert.Contains(t, out, "Estimated Delivery: 2-3 days")

	out = h.run(t, "confirm", "confirm")
	assert.Equal(t, 1, strings.Count(out, "placed: Processing, ₹290"))
	assert.Equal(t, 1, strings.Count(out, "already placed"))
	assert.Contains(t, out, "[cart: 0 items, ₹0]")
	assert.Equal(t, before+1, h.orders.Len())
	assert.True(t, h.cart.IsEmpty())
}

func TestSession_AddAfterConfirmNeedsNewCheckout(t *testing.T) {
	h := newHarness(t)
	before := h.orders.Len()

	out := h.run(t, "add 1 2", "checkout", "confirm", "add 3 1", "confirm")

	assert.Equal(t, 1, strings.Count(out, "placed: Processing"))
	assert.NotContains(t, out, "already placed")
	assert.Contains(t, out, "run checkout first")
	assert.Equal(t, before+1, h.orders.Len())
	assert.Equal(t, 1, h.cart.ItemQuantity(3))

	out = h.run(t, "checkout", "confirm")
	assert.Contains(t, out, "placed: Processing, ₹400")
	assert.Equal(t, before+2, h.orders.Len())
	assert.True(t, h.cart.IsEmpty())
}

func TestSession_CartChangeAfterCheckoutDropsKey(t *testing.T) {
	h := newHarness(t)
	before := h.orders.Len()

	out := h.run(t, "add 1", "checkout", "inc 1", "confirm")

	assert.Contains(t, out, "run checkout first")
	assert.NotContains(t, out, "placed: Processing")
	assert.Equal(t, before, h.orders.Len())
	assert.Equal(t, 2, h.cart.ItemQuantity(1))
}

func TestSession_CheckoutEmptyCart(t *testing.T) {
	h := newHarness(t)
	out := h.run(t, "checkout")
	assert.Contains(t, out, "error: cart is empty")
}

func TestSession_OrdersAndAdvance(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "orders in transit")
	assert.Contains(t, out, "ORD003")
	assert.NotContains(t, out, "ORD001")

	out = h.run(t, "orders shipped")
	assert.Contains(t, out, `unknown status "shipped"`)

	out = h.run(t, "advance ORD004", "advance ORD001")
	assert.Contains(t, out, "Order ORD004 is now In Transit")
	assert.Contains(t, out, "already delivered")
}

func TestSession_Export(t *testing.T) {
	h := newHarness(t)
	out := h.run(t, "export")
	assert.Contains(t, out, "order_id,placed_on,status,items,subtotal,delivery_fee,total")
	assert.Contains(t, out, "ORD001,2024-01-15,Delivered,4,0,0,450")
}

func TestSession_QuitAndUnknown(t *testing.T) {
	h := newHarness(t)
	out := h.run(t, "frobnicate", "quit", "add 1")
	assert.Contains(t, out, `unknown command "frobnicate"`)
	assert.Contains(t, out, "bye")
	assert.True(t, h.cart.IsEmpty())
}

func TestSession_CloseStopsBadge(t *testing.T) {
	h := newHarness(t)
	h.s.Close()
	h.out.Reset()
	require.NoError(t, h.cart.Add(catalog.Product{ID: 9, Name: "Test", Price: 1}, 1))
	assert.Empty(t, h.out.String())
}
