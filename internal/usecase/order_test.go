package usecase

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

type orderFixture struct {
	store  *testhelpers.MemoryStore
	events *testhelpers.EventRecorder
	uc     *OrderUseCase
	a, b   model.Product
}

func newOrderFixture() *orderFixture {
	store := testhelpers.NewMemoryStore()
	a, b := seedCatalog(store)
	events := &testhelpers.EventRecorder{}
	uc := NewOrderUseCase(store.Orders(), NewOrderNumberGenerator("ORD"), events, discardLogger())
	return &orderFixture{store: store, events: events, uc: uc, a: a, b: b}
}

func (f *orderFixture) input(items ...model.LineItem) model.Checkout {
	return model.Checkout{
		UserID:        1,
		Items:         items,
		Shipping:      shipping(),
		PaymentMethod: "card",
	}
}

var orderNumberPattern = regexp.MustCompile(`^ORD-\d{14}-[0-9A-F]{8}$`)

func TestPlaceOrderSnapshotsAndReservesStock(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	carts := NewCartUseCase(f.store.Carts())
	_, err := carts.Add(ctx, 1, f.a.ID, 2)
	require.NoError(t, err)

	order, err := f.uc.Place(ctx, f.input(
		model.LineItem{ProductID: f.a.ID, Quantity: 2},
		model.LineItem{ProductID: f.b.ID, Quantity: 1},
	))
	require.NoError(t, err)

	assert.Regexp(t, orderNumberPattern, order.Number)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.True(t, order.Subtotal.Equal(dec("49.99")))
	assert.True(t, order.TotalPrice.Equal(dec("49.99")))
	assert.Nil(t, order.CouponCode)
	require.Len(t, order.Lines, 2)
	assert.Equal(t, "A", order.Lines[0].Title)
	assert.True(t, order.Lines[0].UnitPrice.Equal(dec("20.00")))

	a, _ := f.store.Product(f.a.ID)
	b, _ := f.store.Product(f.b.ID)
	assert.Equal(t, 3, a.Stock)
	assert.Equal(t, 9, b.Stock)

	view, err := carts.View(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, view.Items, "cart must be cleared")

	a.Price = dec("99.00")
	_, err = f.store.Products().Update(ctx, a)
	require.NoError(t, err)
	stored, err := f.uc.Get(ctx, model.Identity{UserID: 1, Role: model.RoleCustomer}, order.ID)
	require.NoError(t, err)
	assert.True(t, stored.Lines[0].UnitPrice.Equal(dec("20.00")), "line snapshot must not follow catalog price")

	events := f.events.Events()
	require.Len(t, events, 1)
	assert.Equal(t, model.EventOrderCreated, events[0].Type)
	assert.Equal(t, order.Number, events[0].OrderNumber)
}

func TestPlaceOrderWithCoupon(t *testing.T) {
	f := newOrderFixture()
	f.store.AddCoupon(save10())
	ctx := context.Background()

	in := f.input(
		model.LineItem{ProductID: f.a.ID, Quantity: 2},
		model.LineItem{ProductID: f.b.ID, Quantity: 1},
	)
	in.CouponCode = "SAVE10"
	in.TotalPrice = decPtr("44.99")

	order, err := f.uc.Place(ctx, in)
	require.NoError(t, err)
	assert.True(t, order.Discount.Equal(dec("5.00")), "got %s", order.Discount)
	assert.True(t, order.TotalPrice.Equal(dec("44.99")), "got %s", order.TotalPrice)
	require.NotNil(t, order.CouponCode)
	assert.Equal(t, "SAVE10", *order.CouponCode)

	coupon, _ := f.store.Coupon("SAVE10")
	assert.Equal(t, 1, coupon.UsedCount)
}

func TestPlaceOrderFailuresWriteNothing(t *testing.T) {
	f := newOrderFixture()
	f.store.AddCoupon(save10())
	ctx := context.Background()

	mismatch := f.input(model.LineItem{ProductID: f.a.ID, Quantity: 2}, model.LineItem{ProductID: f.b.ID, Quantity: 1})
	mismatch.CouponCode = "SAVE10"
	mismatch.TotalPrice = decPtr("49.99")

	belowMinimum := f.input(model.LineItem{ProductID: f.a.ID, Quantity: 1})
	belowMinimum.CouponCode = "SAVE10"

	unknownCoupon := f.input(model.LineItem{ProductID: f.a.ID, Quantity: 1})
	unknownCoupon.CouponCode = "NOPE"

	noShipping := f.input(model.LineItem{ProductID: f.a.ID, Quantity: 1})
	noShipping.Shipping.City = " "

	noPayment := f.input(model.LineItem{ProductID: f.a.ID, Quantity: 1})
	noPayment.PaymentMethod = ""

	cases := []struct {
		name string
		in   model.Checkout
		want error
	}{
		{name: "empty", in: f.input(), want: domainErrors.ErrInvalidArgument},
		{name: "zero quantity", in: f.input(model.LineItem{ProductID: f.a.ID, Quantity: 0}), want: domainErrors.ErrInvalidArgument},
		{name: "duplicate product", in: f.input(model.LineItem{ProductID: f.a.ID, Quantity: 1}, model.LineItem{ProductID: f.a.ID, Quantity: 1}), want: domainErrors.ErrInvalidArgument},
		{name: "missing shipping", in: noShipping, want: domainErrors.ErrInvalidArgument},
		{name: "missing payment", in: noPayment, want: domainErrors.ErrInvalidArgument},
		{name: "unknown product", in: f.input(model.LineItem{ProductID: f.a.ID, Quantity: 1}, model.LineItem{ProductID: 999, Quantity: 1}), want: domainErrors.ErrNotFound},
		{name: "insufficient stock", in: f.input(model.LineItem{ProductID: f.b.ID, Quantity: 1}, model.LineItem{ProductID: f.a.ID, Quantity: 6}), want: domainErrors.ErrInsufficientStock},
		{name: "total mismatch", in: mismatch, want: domainErrors.ErrTotalMismatch},
		{name: "coupon below minimum", in: belowMinimum, want: domainErrors.ErrCouponBelowMinimum},
		{name: "unknown coupon", in: unknownCoupon, want: domainErrors.ErrNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Place(ctx, tc.in)
			require.ErrorIs(t, err, tc.want)

			a, _ := f.store.Product(f.a.ID)
			b, _ := f.store.Product(f.b.ID)
			coupon, _ := f.store.Coupon("SAVE10")
			assert.Equal(t, 5, a.Stock)
			assert.Equal(t, 10, b.Stock)
			assert.Zero(t, coupon.UsedCount)
			assert.Zero(t, f.store.OrderCount())
			assert.Empty(t, f.events.Events())
		})
	}
}

func TestPlaceOrderConcurrentLastUnit(t *testing.T) {
	f := newOrderFixture()
	last := f.store.AddProduct(model.Product{Title: "Last", Price: dec("3.00"), Stock: 1})
	ctx := context.Background()

	var (
		wg   sync.WaitGroup
		errs = make([]error, 2)
	)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := f.input(model.LineItem{ProductID: last.ID, Quantity: 1})
			in.UserID = int64(i + 1)
			_, errs[i] = f.uc.Place(ctx, in)
		}(i)
	}
	wg.Wait()

	var succeeded, outOfStock int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domainErrors.ErrInsufficientStock):
			outOfStock++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, outOfStock)
	p, _ := f.store.Product(last.ID)
	assert.Zero(t, p.Stock)
}

func TestPlaceOrderCouponLimitHoldsUnderConcurrency(t *testing.T) {
	f := newOrderFixture()
	bulk := f.store.AddProduct(model.Product{Title: "Bulk", Price: dec("50.00"), Stock: 100})
	limit := 3
	coupon := save10()
	coupon.UsageLimit = &limit
	f.store.AddCoupon(coupon)
	ctx := context.Background()

	const attempts = 10
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		exceeded int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			in := f.input(model.LineItem{ProductID: bulk.ID, Quantity: 1})
			in.CouponCode = "SAVE10"
			_, err := f.uc.Place(ctx, in)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domainErrors.ErrCouponUsageExceeded):
				exceeded++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, ok)
	assert.Equal(t, attempts-limit, exceeded)
	stored, _ := f.store.Coupon("SAVE10")
	assert.Equal(t, limit, stored.UsedCount)
	p, _ := f.store.Product(bulk.ID)
	assert.Equal(t, 100-limit, p.Stock)
}

func TestPlaceOrderRetriesNumberConflicts(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	var seen []string
	f.store.BeforeOrderCreate = func(req model.PlaceOrder) error {
		seen = append(seen, req.Number)
		if len(seen) < 3 {
			return domainErrors.ErrOrderNumberConflict
		}
		return nil
	}
	order, err := f.uc.Place(ctx, f.input(model.LineItem{ProductID: f.a.ID, Quantity: 1}))
	require.NoError(t, err)
	assert.Len(t, seen, 3)
	assert.Equal(t, seen[2], order.Number)

	f.store.BeforeOrderCreate = func(model.PlaceOrder) error { return domainErrors.ErrOrderNumberConflict }
	_, err = f.uc.Place(ctx, f.input(model.LineItem{ProductID: f.a.ID, Quantity: 1}))
	require.ErrorIs(t, err, domainErrors.ErrOrderNumberConflict)
}

func TestOrderStatusTransitions(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	order, err := f.uc.Place(ctx, f.input(model.LineItem{ProductID: f.a.ID, Quantity: 1}))
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(ctx, order.ID, model.OrderStatusDelivered)
	require.ErrorIs(t, err, domainErrors.ErrInvalidTransition)
	stored, err := f.store.Orders().GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, stored.Status)

	_, err = f.uc.UpdateStatus(ctx, order.ID, "LOST")
	require.ErrorIs(t, err, domainErrors.ErrInvalidArgument)

	_, err = f.uc.UpdateStatus(ctx, 999, model.OrderStatusConfirmed)
	require.ErrorIs(t, err, domainErrors.ErrNotFound)

	for _, next := range []model.OrderStatus{model.OrderStatusConfirmed, model.OrderStatusShipped, model.OrderStatusDelivered} {
		updated, err := f.uc.UpdateStatus(ctx, order.ID, next)
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}

	_, err = f.uc.UpdateStatus(ctx, order.ID, model.OrderStatusCancelled)
	require.ErrorIs(t, err, domainErrors.ErrInvalidTransition)

	events := f.events.Events()
	require.Len(t, events, 4)
	assert.Equal(t, model.EventOrderStatusChanged, events[3].Type)
	assert.Equal(t, string(model.OrderStatusDelivered), events[3].Status)
}

func TestOrderCancellationDoesNotRestock(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	order, err := f.uc.Place(ctx, f.input(model.LineItem{ProductID: f.a.ID, Quantity: 2}))
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(ctx, order.ID, model.OrderStatusCancelled)
	require.NoError(t, err)
	a, _ := f.store.Product(f.a.ID)
	assert.Equal(t, 3, a.Stock)
}

func TestOrderVisibility(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	order, err := f.uc.Place(ctx, f.input(model.LineItem{ProductID: f.a.ID, Quantity: 1}))
	require.NoError(t, err)

	_, err = f.uc.Get(ctx, model.Identity{UserID: 2, Role: model.RoleCustomer}, order.ID)
	require.ErrorIs(t, err, domainErrors.ErrNotFound)
	_, err = f.uc.Get(ctx, model.Identity{UserID: 99, Role: model.RoleAdmin}, order.ID)
	require.NoError(t, err)

	mine, err := f.uc.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	theirs, err := f.uc.ListByUser(ctx, 2)
	require.NoError(t, err)
	assert.NotNil(t, theirs)
	assert.Empty(t, theirs)

	pending, err := f.uc.ListAll(ctx, model.OrderFilter{Status: model.OrderStatusPending})
	require.NoError(t, err)
	assert.Len(t, pending, 1)
	_, err = f.uc.ListAll(ctx, model.OrderFilter{Status: "LOST"})
	require.ErrorIs(t, err, domainErrors.ErrInvalidArgument)
}

func TestOrderNumberGenerator(t *testing.T) {
	gen := NewOrderNumberGenerator("SHOP")
	gen.random = func() uuid.UUID {
		return uuid.MustParse("0a1b2c3d-0000-4000-8000-000000000000")
	}
	at := time.Date(2026, 7, 4, 9, 5, 3, 0, time.FixedZone("X", 3*3600))
	assert.Equal(t, "SHOP-20260704060503-0A1B2C3D", gen.Next(at))

	defaultGen := NewOrderNumberGenerator("ORD")
	assert.Regexp(t, orderNumberPattern, defaultGen.Next(time.Now()))
	assert.NotEqual(t, defaultGen.Next(at), defaultGen.Next(at))
}
