package cart

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoepos/internal/models"
)

func TestSession_CheckoutStateMachine(t *testing.T) {
	s := NewSession(uuid.New())
	assert.Equal(t, CheckoutIdle, s.State())

	require.NoError(t, s.TryBeginCheckout())
	assert.Equal(t, CheckoutProcessing, s.State())
	assert.ErrorIs(t, s.TryBeginCheckout(), ErrCheckoutInProgress)

	s.EndCheckout()
	assert.Equal(t, CheckoutIdle, s.State())
	assert.NoError(t, s.TryBeginCheckout())
}

func TestSession_CustomerSelection(t *testing.T) {
	s := NewSession(uuid.New())
	assert.Nil(t, s.Customer())

	s.SelectCustomer(models.Customer{CustomerID: 5, FullName: "Ana", Phone: "555-0101"})
	got := s.Customer()
	require.NotNil(t, got)
	assert.Equal(t, int64(5), got.CustomerID)

	got.FullName = "changed"
	assert.Equal(t, "Ana", s.Customer().FullName)

	s.ClearCustomer()
	assert.Nil(t, s.Customer())
}

func TestSession_View(t *testing.T) {
	s := NewSession(uuid.New())
	s.Cart.AddItem(product(1, 50), variant(10, 1, 5), 2)
	s.Cart.AddItem(product(2, 20), variant(20, 2, 5), 1)
	s.SelectCustomer(models.Customer{CustomerID: 5})

	view := s.View()
	assert.Equal(t, s.ID, view.SessionID)
	assert.Equal(t, 3, view.TotalItems)
	assert.Equal(t, 120.0, view.TotalAmount)
	assert.Equal(t, "idle", view.CheckoutState)
	require.Len(t, view.Lines, 2)
	assert.Equal(t, 100.0, view.Lines[0].LineTotal)
	assert.Equal(t, 20.0, view.Lines[1].LineTotal)
	require.NotNil(t, view.SelectedCustomer)
}

func TestRegistry_GetOrCreate(t *testing.T) {
	r := NewRegistry()

	s, created := r.GetOrCreate(uuid.Nil)
	assert.True(t, created)

	again, created := r.GetOrCreate(s.ID)
	assert.False(t, created)
	assert.Same(t, s, again)

	other, created := r.GetOrCreate(uuid.New())
	assert.True(t, created)
	assert.NotEqual(t, s.ID, other.ID)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_SweepIdle(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry()
	r.now = func() time.Time { return now }

	stale := r.Create()
	busy := r.Create()
	require.NoError(t, busy.TryBeginCheckout())

	now = now.Add(2 * time.Hour)
	fresh := r.Create()

	evicted := r.SweepIdle(time.Hour)
	assert.Equal(t, 1, evicted)

	_, ok := r.Get(stale.ID)
	assert.False(t, ok)
	_, ok = r.Get(busy.ID)
	assert.True(t, ok)
	_, ok = r.Get(fresh.ID)
	assert.True(t, ok)
}

func TestRegistry_Delete(t *testing.T) {
	r := NewRegistry()
	s := r.Create()
	r.Delete(s.ID)

	_, ok := r.Get(s.ID)
	assert.False(t, ok)
}
