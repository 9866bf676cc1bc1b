package verification

import (
	"context"
	"errors"
	"testing"

	"radiant/models"
	"radiant/services/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory verification state store.
type memStore struct {
	states map[string]State
}

func newMemStore() *memStore {
	return &memStore{states: map[string]State{}}
}

func (m *memStore) Get(_ context.Context, cartID string) (*State, error) {
	s, ok := m.states[cartID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memStore) Put(_ context.Context, cartID string, state State) error {
	m.states[cartID] = state
	return nil
}

func (m *memStore) Delete(_ context.Context, cartID string) error {
	delete(m.states, cartID)
	return nil
}

// stubGateway implements scheduling.Gateway with injectable behavior for the
// operations the verification flow touches.
type stubGateway struct {
	sendCode      func(phone string) (string, error)
	takeOwnership func(transactionID, code string) (*models.Cart, error)
	freshTimes    func(date string) ([]models.TimeSlot, error)
	reserve       func(slot models.TimeSlot) (*models.Cart, error)
}

func (s *stubGateway) GetCart(locationKey, cartID string) models.Cart {
	return models.Cart{ID: cartID, LocationKey: locationKey}
}

func (s *stubGateway) SendOwnershipCode(_ context.Context, _ models.Cart, phone string) (string, error) {
	return s.sendCode(phone)
}

func (s *stubGateway) TakeOwnershipByCode(_ context.Context, _ models.Cart, transactionID, code string) (*models.Cart, error) {
	return s.takeOwnership(transactionID, code)
}

func (s *stubGateway) FreshBookableTimes(_ context.Context, _ models.Cart, date string) ([]models.TimeSlot, error) {
	return s.freshTimes(date)
}

func (s *stubGateway) ReserveBookableItems(_ context.Context, _ models.Cart, slot models.TimeSlot) (*models.Cart, error) {
	return s.reserve(slot)
}

func (s *stubGateway) CreateCartWithItem(context.Context, string, string, string, []string) (*scheduling.CreateCartResult, error) {
	panic("not used")
}

func (s *stubGateway) CreateCartWithItems(context.Context, string, []models.CartItemInput) (*scheduling.CreateCartResult, error) {
	panic("not used")
}

func (s *stubGateway) BookableDates(context.Context, models.Cart, string, string) ([]string, error) {
	panic("not used")
}

func (s *stubGateway) BookableTimes(context.Context, models.Cart, string) ([]models.TimeSlot, error) {
	panic("not used")
}

func (s *stubGateway) AttachClientInformation(context.Context, models.Cart, models.ClientInformation) (*models.Cart, error) {
	panic("not used")
}

func (s *stubGateway) Checkout(context.Context, models.Cart) ([]models.Appointment, error) {
	panic("not used")
}

func (s *stubGateway) StaffForService(context.Context, string, string) ([]scheduling.StaffAvailability, error) {
	panic("not used")
}

func (s *stubGateway) SyncCatalog(context.Context) (int, error) {
	panic("not used")
}

func ownedCart(client *models.ClientInformation) *models.Cart {
	return &models.Cart{ID: "cart-1", LocationKey: "westfield", Client: client}
}

func TestSendCode(t *testing.T) {
	ctx := context.Background()

	t.Run("success records code_sent state", func(t *testing.T) {
		store := newMemStore()
		flow := &DefaultFlowService{
			Gateway: &stubGateway{sendCode: func(string) (string, error) { return "txn-9", nil }},
			Store:   store,
		}
		result, err := flow.SendCode(ctx, "westfield", "cart-1", "+15550100")
		require.NoError(t, err)
		assert.True(t, result.Sent)
		assert.Equal(t, "txn-9", result.TransactionID)
		assert.False(t, result.BypassAllowed)

		state := store.states["cart-1"]
		assert.Equal(t, StateCodeSent, state.State)
		assert.Equal(t, "txn-9", state.TransactionID)
		assert.Equal(t, "+15550100", state.Phone)
	})

	t.Run("delivery failure offers bypass", func(t *testing.T) {
		store := newMemStore()
		flow := &DefaultFlowService{
			Gateway: &stubGateway{sendCode: func(string) (string, error) {
				return "", errors.New("sms provider down")
			}},
			Store: store,
		}
		result, err := flow.SendCode(ctx, "westfield", "cart-1", "+15550100")
		require.NoError(t, err)
		assert.False(t, result.Sent)
		assert.True(t, result.BypassAllowed)
		assert.Empty(t, store.states)
	})

	t.Run("expired cart is fatal, no bypass", func(t *testing.T) {
		flow := &DefaultFlowService{
			Gateway: &stubGateway{sendCode: func(string) (string, error) {
				return "", &scheduling.BookingError{Code: scheduling.ErrCodeCartExpired, Message: "expired"}
			}},
			Store: newMemStore(),
		}
		_, err := flow.SendCode(ctx, "westfield", "cart-1", "+15550100")
		require.Error(t, err)
		assert.True(t, scheduling.IsCode(err, scheduling.ErrCodeCartExpired))
	})
}

func TestConfirmCodeReReservation(t *testing.T) {
	ctx := context.Background()
	slots := []models.TimeSlot{
		{ID: "slot-1000", StartTime: "10:00"},
		{ID: "slot-1130", StartTime: "11:30"},
	}

	newFlow := func(gw *stubGateway) (*DefaultFlowService, *memStore) {
		store := newMemStore()
		store.states["cart-1"] = State{State: StateCodeSent, TransactionID: "txn-9", Phone: "+15550100"}
		return &DefaultFlowService{Gateway: gw, Store: store}, store
	}

	t.Run("original slot still open is re-reserved", func(t *testing.T) {
		var reservedSlot models.TimeSlot
		gw := &stubGateway{
			takeOwnership: func(transactionID, code string) (*models.Cart, error) {
				assert.Equal(t, "txn-9", transactionID)
				return ownedCart(&models.ClientInformation{FirstName: "Ava"}), nil
			},
			freshTimes: func(date string) ([]models.TimeSlot, error) {
				assert.Equal(t, "2026-03-02", date)
				return slots, nil
			},
			reserve: func(slot models.TimeSlot) (*models.Cart, error) {
				reservedSlot = slot
				cart := ownedCart(nil)
				cart.Reservation = &models.ReservedSlot{Date: "2026-03-02", StartTime: slot.StartTime}
				return cart, nil
			},
		}
		flow, store := newFlow(gw)

		result, err := flow.ConfirmCode(ctx, "westfield", "cart-1", "", "123456", "2026-03-02", "10:00")
		require.NoError(t, err)
		assert.True(t, result.Verified)
		assert.True(t, result.ReReserved)
		assert.False(t, result.SlotLost)
		assert.True(t, result.ClientKnown)
		assert.Equal(t, "slot-1000", reservedSlot.ID)
		require.NotNil(t, result.Cart.Reservation)
		assert.Equal(t, StateVerified, store.states["cart-1"].State)
	})

	t.Run("slot gone from fresh times", func(t *testing.T) {
		gw := &stubGateway{
			takeOwnership: func(string, string) (*models.Cart, error) { return ownedCart(nil), nil },
			freshTimes: func(string) ([]models.TimeSlot, error) {
				return []models.TimeSlot{{ID: "slot-1130", StartTime: "11:30"}}, nil
			},
		}
		flow, _ := newFlow(gw)

		result, err := flow.ConfirmCode(ctx, "westfield", "cart-1", "", "123456", "2026-03-02", "10:00")
		require.NoError(t, err)
		assert.True(t, result.Verified)
		assert.False(t, result.ReReserved)
		assert.True(t, result.SlotLost)
		assert.False(t, result.ClientKnown)
	})

	t.Run("reserve race loses the slot", func(t *testing.T) {
		gw := &stubGateway{
			takeOwnership: func(string, string) (*models.Cart, error) { return ownedCart(nil), nil },
			freshTimes:    func(string) ([]models.TimeSlot, error) { return slots, nil },
			reserve: func(models.TimeSlot) (*models.Cart, error) {
				return nil, &scheduling.BookingError{Code: scheduling.ErrCodeSlotUnavailable, Message: "taken"}
			},
		}
		flow, _ := newFlow(gw)

		result, err := flow.ConfirmCode(ctx, "westfield", "cart-1", "", "123456", "2026-03-02", "10:00")
		require.NoError(t, err)
		assert.True(t, result.Verified)
		assert.True(t, result.SlotLost)
	})

	t.Run("no prior reservation skips re-reserve", func(t *testing.T) {
		gw := &stubGateway{
			takeOwnership: func(string, string) (*models.Cart, error) { return ownedCart(nil), nil },
			freshTimes: func(string) ([]models.TimeSlot, error) {
				t.Fatal("times must not be queried without a prior reservation")
				return nil, nil
			},
		}
		flow, _ := newFlow(gw)

		result, err := flow.ConfirmCode(ctx, "westfield", "cart-1", "", "123456", "", "")
		require.NoError(t, err)
		assert.True(t, result.Verified)
		assert.False(t, result.ReReserved)
		assert.False(t, result.SlotLost)
	})
}

func TestConfirmCodeAttemptLimit(t *testing.T) {
	ctx := context.Background()
	gw := &stubGateway{
		takeOwnership: func(string, string) (*models.Cart, error) {
			return nil, &scheduling.BookingError{Code: scheduling.ErrCodeInvalidCode, Message: "wrong"}
		},
	}
	store := newMemStore()
	store.states["cart-1"] = State{State: StateCodeSent, TransactionID: "txn-9"}
	flow := &DefaultFlowService{Gateway: gw, Store: store}

	for attempt := 1; attempt < maxAttempts; attempt++ {
		_, err := flow.ConfirmCode(ctx, "westfield", "cart-1", "", "000000", "", "")
		require.Error(t, err)
		assert.True(t, scheduling.IsCode(err, scheduling.ErrCodeInvalidCode), "attempt %d", attempt)
		assert.Equal(t, attempt, store.states["cart-1"].Attempts)
	}

	// The final failed attempt locks the flow.
	_, err := flow.ConfirmCode(ctx, "westfield", "cart-1", "", "000000", "", "")
	require.ErrorIs(t, err, ErrTooManyAttempts)
	assert.Equal(t, StateLocked, store.states["cart-1"].State)

	// Locked stays locked, even with the right code.
	_, err = flow.ConfirmCode(ctx, "westfield", "cart-1", "", "123456", "", "")
	require.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestConfirmCodeWithoutSend(t *testing.T) {
	flow := &DefaultFlowService{Gateway: &stubGateway{}, Store: newMemStore()}
	_, err := flow.ConfirmCode(context.Background(), "westfield", "cart-1", "txn-9", "123456", "", "")
	require.ErrorIs(t, err, ErrNotStarted)
}
