package scheduling

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// upstreamClient speaks the booking provider's cart API. Every call is a
// stateless request/response addressed by cart id; nothing is retried here.
type upstreamClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func newUpstreamClient(baseURL, apiKey string, timeout time.Duration) *upstreamClient {
	return &upstreamClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// upstreamError is the provider's error envelope.
type upstreamError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *upstreamClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return newBookingError(ErrCodeUpstream, "booking provider unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var ue upstreamError
		_ = json.NewDecoder(resp.Body).Decode(&ue)
		return classifyUpstreamError(resp.StatusCode, ue)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return newBookingError(ErrCodeUpstream, "malformed booking provider response", err)
		}
	}
	return nil
}

// classifyUpstreamError maps provider status/error codes onto the gateway
// taxonomy. Unknown shapes fall through to the generic upstream class.
func classifyUpstreamError(status int, ue upstreamError) error {
	cause := fmt.Errorf("upstream status %d: %s %s", status, ue.Error, ue.Message)
	switch ue.Error {
	case "CART_EXPIRED", "CART_NOT_FOUND":
		return newBookingError(ErrCodeCartExpired, "booking session expired, start over", cause)
	case "SLOT_NOT_AVAILABLE":
		return newBookingError(ErrCodeSlotUnavailable, "that time was just taken, pick another", cause)
	case "INVALID_CODE":
		return newBookingError(ErrCodeInvalidCode, "the code entered is incorrect", cause)
	case "CLIENT_INFO_REQUIRED":
		return newBookingError(ErrCodeClientInfoRequired, "client details are required before checkout", cause)
	}
	switch status {
	case http.StatusGone, http.StatusNotFound:
		return newBookingError(ErrCodeCartExpired, "booking session expired, start over", cause)
	case http.StatusConflict:
		return newBookingError(ErrCodeSlotUnavailable, "that time was just taken, pick another", cause)
	}
	return newBookingError(ErrCodeUpstream, "booking provider error, please try again", cause)
}

func (c *upstreamClient) createCart(ctx context.Context, locationID string) (*rawCart, error) {
	body := map[string]string{"locationId": locationID}
	var cart rawCart
	if err := c.do(ctx, http.MethodPost, "/carts", body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *upstreamClient) listCategories(ctx context.Context, cartID string) ([]rawCategory, error) {
	var out struct {
		Categories []rawCategory `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/carts/"+cartID+"/categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

func (c *upstreamClient) addItem(ctx context.Context, cartID, itemID, staffVariantID string, optionIDs []string) (*rawCart, error) {
	body := map[string]any{"itemId": itemID}
	if staffVariantID != "" {
		body["staffVariantId"] = staffVariantID
	}
	if len(optionIDs) > 0 {
		body["optionIds"] = optionIDs
	}
	var cart rawCart
	if err := c.do(ctx, http.MethodPost, "/carts/"+cartID+"/items", body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *upstreamClient) bookableDates(ctx context.Context, cartID, lower, upper string) ([]string, error) {
	path := "/carts/" + cartID + "/bookable-dates"
	sep := "?"
	if lower != "" {
		path += sep + "lower=" + lower
		sep = "&"
	}
	if upper != "" {
		path += sep + "upper=" + upper
	}
	var out struct {
		Dates []string `json:"dates"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Dates, nil
}

func (c *upstreamClient) bookableTimes(ctx context.Context, cartID, date string) ([]rawTimeSlot, error) {
	var out struct {
		Times []rawTimeSlot `json:"times"`
	}
	if err := c.do(ctx, http.MethodGet, "/carts/"+cartID+"/bookable-times?date="+date, nil, &out); err != nil {
		return nil, err
	}
	return out.Times, nil
}

func (c *upstreamClient) reserve(ctx context.Context, cartID, timeID string) (*rawCart, error) {
	body := map[string]string{"timeId": timeID}
	var cart rawCart
	if err := c.do(ctx, http.MethodPost, "/carts/"+cartID+"/reserve", body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *upstreamClient) sendOwnershipCode(ctx context.Context, cartID, phone string) (string, error) {
	body := map[string]string{"phone": phone}
	var out struct {
		TransactionID string `json:"transactionId"`
	}
	if err := c.do(ctx, http.MethodPost, "/carts/"+cartID+"/ownership/code", body, &out); err != nil {
		return "", err
	}
	return out.TransactionID, nil
}

func (c *upstreamClient) takeOwnership(ctx context.Context, cartID, transactionID, code string) (*rawCart, error) {
	body := map[string]string{"transactionId": transactionID, "code": code}
	var cart rawCart
	if err := c.do(ctx, http.MethodPost, "/carts/"+cartID+"/ownership", body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *upstreamClient) updateClient(ctx context.Context, cartID string, client rawClient) (*rawCart, error) {
	var cart rawCart
	if err := c.do(ctx, http.MethodPut, "/carts/"+cartID+"/client", client, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *upstreamClient) checkout(ctx context.Context, cartID string) ([]rawAppointment, error) {
	var out struct {
		Appointments []rawAppointment `json:"appointments"`
	}
	if err := c.do(ctx, http.MethodPost, "/carts/"+cartID+"/checkout", nil, &out); err != nil {
		return nil, err
	}
	return out.Appointments, nil
}
