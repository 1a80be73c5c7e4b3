package cart

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"shoepos/internal/models"
)

// CheckoutState is the session's checkout state machine.
type CheckoutState string

const (
	CheckoutIdle       CheckoutState = "idle"
	CheckoutProcessing CheckoutState = "processing"
)

var ErrCheckoutInProgress = errors.New("checkout already in progress")

// Session is the state of one POS terminal: its cart, the customer the
// sale is for, and whether a checkout is running.
type Session struct {
	ID   uuid.UUID
	Cart *Cart

	mu           sync.Mutex
	customer     *models.Customer
	state        CheckoutState
	lastActivity time.Time
	now          func() time.Time
}

func NewSession(id uuid.UUID) *Session {
	return newSession(id, time.Now)
}

func newSession(id uuid.UUID, now func() time.Time) *Session {
	return &Session{
		ID:           id,
		Cart:         New(),
		state:        CheckoutIdle,
		lastActivity: now(),
		now:          now,
	}
}

// Customer returns a copy of the selected customer, or nil.
func (s *Session) Customer() *models.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.customer == nil {
		return nil
	}
	c := *s.customer
	return &c
}

func (s *Session) SelectCustomer(c models.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customer = &c
}

func (s *Session) ClearCustomer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customer = nil
}

func (s *Session) State() CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// TryBeginCheckout moves idle to processing. It fails when a checkout is
// already running on this session.
func (s *Session) TryBeginCheckout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == CheckoutProcessing {
		return ErrCheckoutInProgress
	}
	s.state = CheckoutProcessing
	return nil
}

// EditCart applies fn to the cart unless a checkout is running. The check
// and the edit happen under the session lock, so a checkout never starts
// between them.
func (s *Session) EditCart(fn func(c *Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == CheckoutProcessing {
		return ErrCheckoutInProgress
	}
	return fn(s.Cart)
}

func (s *Session) EndCheckout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = CheckoutIdle
}

// Touch records activity on the session.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = s.now()
}

func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// View renders the session for the POS screen.
func (s *Session) View() models.CartView {
	lines := s.Cart.Items()

	view := models.CartView{
		SessionID:        s.ID,
		Lines:            make([]models.CartViewLine, 0, len(lines)),
		TotalAmount:      SumLines(lines),
		SelectedCustomer: s.Customer(),
		CheckoutState:    string(s.State()),
	}
	for _, l := range lines {
		view.TotalItems += l.Quantity
		view.Lines = append(view.Lines, models.CartViewLine{
			CartLine:  l,
			LineTotal: SumLines([]models.CartLine{l}),
		})
	}
	return view
}
