package verification

import (
	"context"
	"errors"
	"fmt"

	"radiant/models"
	"radiant/services/scheduling"
	"radiant/utils"

	"go.uber.org/zap"
)

// maxAttempts bounds wrong-code retries per cart. After the fifth failure
// the flow locks and the visitor must restart with a fresh cart.
const maxAttempts = 5

var (
	// ErrTooManyAttempts means the flow is locked for this cart.
	ErrTooManyAttempts = errors.New("too many incorrect codes, start over")
	// ErrNotStarted means ConfirmCode arrived before any code was sent.
	ErrNotStarted = errors.New("verification has not been started for this cart")
)

// SendResult reports the outcome of requesting a one-time code. When the
// upstream cannot deliver SMS, Sent is false and BypassAllowed is true: the
// caller may skip verification and proceed to manual identity entry.
type SendResult struct {
	TransactionID string `json:"transactionId,omitempty"`
	Sent          bool   `json:"sent"`
	BypassAllowed bool   `json:"bypassAllowed,omitempty"`
}

// ConfirmResult reports the outcome of code submission. Taking ownership
// clears any held reservation upstream, so the flow re-queries times for the
// originally requested date and re-reserves the original start time when it
// is still offered; SlotLost signals the visitor must pick a new time.
type ConfirmResult struct {
	Cart        *models.Cart `json:"cart,omitempty"`
	Verified    bool         `json:"verified"`
	ReReserved  bool         `json:"reReserved"`
	SlotLost    bool         `json:"slotLost"`
	ClientKnown bool         `json:"clientKnown"`
}

// FlowService orchestrates phone-based cart ownership verification.
type FlowService interface {
	SendCode(ctx context.Context, locationKey, cartID, phone string) (*SendResult, error)
	ConfirmCode(ctx context.Context, locationKey, cartID, transactionID, code, date, startTime string) (*ConfirmResult, error)
}

// DefaultFlowService implements FlowService.
type DefaultFlowService struct {
	Gateway scheduling.Gateway
	Store   Store
}

// SendCode transitions unverified -> code_sent. A failed upstream send is
// not fatal: SMS delivery is not always configured, so the caller is offered
// the manual-entry bypass instead.
func (s *DefaultFlowService) SendCode(ctx context.Context, locationKey, cartID, phone string) (*SendResult, error) {
	cart := s.Gateway.GetCart(locationKey, cartID)

	transactionID, err := s.Gateway.SendOwnershipCode(ctx, cart, phone)
	if err != nil {
		if scheduling.IsCode(err, scheduling.ErrCodeCartExpired) {
			return nil, err
		}
		utils.GetLogger().Warn("ownership code send failed, offering bypass",
			zap.String("cartID", cartID), zap.Error(err))
		return &SendResult{Sent: false, BypassAllowed: true}, nil
	}

	state := State{State: StateCodeSent, TransactionID: transactionID, Phone: phone}
	if err := s.Store.Put(ctx, cartID, state); err != nil {
		return nil, fmt.Errorf("failed to record verification state: %w", err)
	}
	return &SendResult{TransactionID: transactionID, Sent: true}, nil
}

// ConfirmCode transitions code_sent -> verified (or back to code_sent on a
// wrong code, bounded by maxAttempts). On success it performs the mandatory
// re-reservation: ownership transfer drops the held slot upstream, and
// proceeding to checkout without a reservation fails outright.
func (s *DefaultFlowService) ConfirmCode(ctx context.Context, locationKey, cartID, transactionID, code, date, startTime string) (*ConfirmResult, error) {
	state, err := s.Store.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if state == nil || state.State != StateCodeSent {
		if state != nil && state.State == StateLocked {
			return nil, ErrTooManyAttempts
		}
		return nil, ErrNotStarted
	}
	if transactionID == "" {
		transactionID = state.TransactionID
	}

	cart := s.Gateway.GetCart(locationKey, cartID)
	owned, err := s.Gateway.TakeOwnershipByCode(ctx, cart, transactionID, code)
	if err != nil {
		if scheduling.IsCode(err, scheduling.ErrCodeInvalidCode) {
			state.Attempts++
			if state.Attempts >= maxAttempts {
				state.State = StateLocked
				if putErr := s.Store.Put(ctx, cartID, *state); putErr != nil {
					utils.GetLogger().Error("failed to lock verification state", zap.Error(putErr))
				}
				return nil, ErrTooManyAttempts
			}
			if putErr := s.Store.Put(ctx, cartID, *state); putErr != nil {
				utils.GetLogger().Error("failed to record failed attempt", zap.Error(putErr))
			}
		}
		return nil, err
	}

	state.State = StateVerified
	state.Attempts = 0
	if err := s.Store.Put(ctx, cartID, *state); err != nil {
		utils.GetLogger().Error("failed to mark verification complete", zap.Error(err))
	}

	result := &ConfirmResult{Cart: owned, Verified: true, ClientKnown: owned.Client != nil}
	if date == "" || startTime == "" {
		// Nothing was reserved before verification; nothing to re-establish.
		return result, nil
	}

	slots, err := s.Gateway.FreshBookableTimes(ctx, *owned, date)
	if err != nil {
		utils.GetLogger().Warn("post-ownership times query failed",
			zap.String("cartID", cartID), zap.String("date", date), zap.Error(err))
		result.SlotLost = true
		return result, nil
	}

	var match *models.TimeSlot
	for i := range slots {
		if slots[i].StartTime == startTime {
			match = &slots[i]
			break
		}
	}
	if match == nil {
		result.SlotLost = true
		return result, nil
	}

	reserved, err := s.Gateway.ReserveBookableItems(ctx, *owned, *match)
	if err != nil {
		if scheduling.IsCode(err, scheduling.ErrCodeSlotUnavailable) {
			result.SlotLost = true
			return result, nil
		}
		return nil, err
	}
	result.Cart = reserved
	result.ReReserved = true
	return result, nil
}
