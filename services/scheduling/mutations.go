package scheduling

import (
	"context"

	"radiant/models"
	"radiant/utils"

	"go.uber.org/zap"
)

// ReserveBookableItems holds the selected slot on the cart. Fails with
// slot_unavailable when another caller reserved it between listing and
// reserving; the caller must re-query times and retry with a new selection.
// The gateway never retries this itself.
func (g *DefaultGateway) ReserveBookableItems(ctx context.Context, cart models.Cart, slot models.TimeSlot) (*models.Cart, error) {
	rc, err := g.client.reserve(ctx, cart.ID, slot.ID)
	if err != nil {
		utils.GetLogger().Warn("reserve failed",
			zap.String("cartID", cart.ID), zap.String("startTime", slot.StartTime), zap.Error(err))
		return nil, err
	}
	updated := normalizeCart(rc, cart.LocationKey)
	return &updated, nil
}

// SendOwnershipCode asks the upstream to text a one-time ownership code to
// the phone number, returning the code-transaction identifier.
func (g *DefaultGateway) SendOwnershipCode(ctx context.Context, cart models.Cart, phone string) (string, error) {
	transactionID, err := g.client.sendOwnershipCode(ctx, cart.ID, phone)
	if err != nil {
		utils.GetLogger().Warn("ownership code send failed",
			zap.String("cartID", cart.ID), zap.Error(err))
		return "", err
	}
	return transactionID, nil
}

// TakeOwnershipByCode submits the one-time code. On success the upstream
// transfers cart ownership to the identified client and, as a side effect,
// clears any held reservation; callers must re-reserve before checkout.
func (g *DefaultGateway) TakeOwnershipByCode(ctx context.Context, cart models.Cart, transactionID, code string) (*models.Cart, error) {
	rc, err := g.client.takeOwnership(ctx, cart.ID, transactionID, code)
	if err != nil {
		return nil, err
	}
	updated := normalizeCart(rc, cart.LocationKey)
	return &updated, nil
}

// AttachClientInformation sets the client identity on the cart.
func (g *DefaultGateway) AttachClientInformation(ctx context.Context, cart models.Cart, client models.ClientInformation) (*models.Cart, error) {
	rc, err := g.client.updateClient(ctx, cart.ID, rawClient{
		FirstName: client.FirstName,
		LastName:  client.LastName,
		Email:     client.Email,
		Phone:     client.Phone,
	})
	if err != nil {
		return nil, err
	}
	updated := normalizeCart(rc, cart.LocationKey)
	return &updated, nil
}

// Checkout commits the reservation into confirmed appointments. The cart is
// unusable afterward.
func (g *DefaultGateway) Checkout(ctx context.Context, cart models.Cart) ([]models.Appointment, error) {
	raw, err := g.client.checkout(ctx, cart.ID)
	if err != nil {
		utils.GetLogger().Warn("checkout failed", zap.String("cartID", cart.ID), zap.Error(err))
		return nil, err
	}
	appts := normalizeAppointments(raw)
	utils.GetLogger().Info("checkout complete",
		zap.String("cartID", cart.ID), zap.Int("appointments", len(appts)))
	return appts, nil
}
