package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"radiant/config"
	"radiant/models"
	"radiant/services/scheduling"
	"radiant/services/session"
	"radiant/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// reserveStubGateway only implements the operations the cart handlers touch;
// everything else panics to catch accidental use.
type reserveStubGateway struct {
	scheduling.Gateway
	reserveErr error
}

func (g *reserveStubGateway) GetCart(locationKey, cartID string) models.Cart {
	return models.Cart{ID: cartID, LocationKey: locationKey}
}

func (g *reserveStubGateway) ReserveBookableItems(_ context.Context, cart models.Cart, _ models.TimeSlot) (*models.Cart, error) {
	if g.reserveErr != nil {
		return nil, g.reserveErr
	}
	reserved := cart
	reserved.Reservation = &models.ReservedSlot{Date: "2026-03-02", StartTime: "10:00"}
	return &reserved, nil
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestReserveHandlerStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "expired cart maps to 410",
			err:        &scheduling.BookingError{Code: scheduling.ErrCodeCartExpired, Message: "expired"},
			wantStatus: http.StatusGone,
			wantCode:   "cart_expired",
		},
		{
			name:       "taken slot maps to 409",
			err:        &scheduling.BookingError{Code: scheduling.ErrCodeSlotUnavailable, Message: "taken"},
			wantStatus: http.StatusConflict,
			wantCode:   "slot_unavailable",
		},
		{
			name:       "missing catalog mapping maps to 404",
			err:        &scheduling.BookingError{Code: scheduling.ErrCodeNotBookable, Message: "not offered"},
			wantStatus: http.StatusNotFound,
			wantCode:   "not_bookable",
		},
		{
			name:       "unclassified failure maps to 502",
			err:        &scheduling.BookingError{Code: scheduling.ErrCodeUpstream, Message: "flaky"},
			wantStatus: http.StatusBadGateway,
			wantCode:   "upstream",
		},
		{
			name:       "success maps to 200",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.POST("/api/cart/:cartID/reserve", ReserveCartHandler(&reserveStubGateway{reserveErr: tt.err}))

			rec := doJSON(t, router, http.MethodPost, "/api/cart/cart-1/reserve", gin.H{
				"locationKey": "westfield",
				"slot":        gin.H{"id": "slot-1000", "startTime": "10:00"},
			})
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantCode, body["error"])
			}
		})
	}
}

func TestReserveHandlerValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/cart/:cartID/reserve", ReserveCartHandler(&reserveStubGateway{}))

	rec := doJSON(t, router, http.MethodPost, "/api/cart/cart-1/reserve", gin.H{
		"locationKey": "westfield",
		"slot":        gin.H{"startTime": "10:00"}, // no slot id
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// trackerStub records calls for the session handlers.
type trackerStub struct {
	createErr error
	updateErr error
	updated   *models.BookingSessionUpdate
}

func (s *trackerStub) Create(_ context.Context, sess models.BookingSession) (*models.BookingSession, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	sess.SessionID = "sess-1"
	sess.Outcome = models.SessionInProgress
	return &sess, nil
}

func (s *trackerStub) Update(_ context.Context, _ string, update models.BookingSessionUpdate) error {
	s.updated = &update
	return s.updateErr
}

func (s *trackerStub) FinalizeStale(context.Context) (int, error) { return 0, nil }

var _ session.TrackerService = (*trackerStub)(nil)

func TestSessionHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("create requires flowType and locationKey", func(t *testing.T) {
		router := gin.New()
		router.POST("/api/sessions", CreateSessionHandler(&trackerStub{}))

		rec := doJSON(t, router, http.MethodPost, "/api/sessions", gin.H{"flowType": "standard"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = doJSON(t, router, http.MethodPost, "/api/sessions", gin.H{
			"flowType": "standard", "locationKey": "westfield",
		})
		assert.Equal(t, http.StatusCreated, rec.Code)

		var body models.BookingSession
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "sess-1", body.SessionID)
		assert.Equal(t, models.SessionInProgress, body.Outcome)
	})

	t.Run("patch forwards only allow-listed fields", func(t *testing.T) {
		stub := &trackerStub{}
		router := gin.New()
		router.PATCH("/api/sessions/:sessionID", UpdateSessionHandler(stub))

		rec := doJSON(t, router, http.MethodPatch, "/api/sessions/sess-1", gin.H{
			"maxStep":   3,
			"outcome":   "completed",
			"sessionId": "sess-override", // not patchable, silently dropped
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, stub.updated)
		require.NotNil(t, stub.updated.MaxStep)
		assert.Equal(t, 3, *stub.updated.MaxStep)
		require.NotNil(t, stub.updated.Outcome)
		assert.Equal(t, "completed", *stub.updated.Outcome)
	})
}

func TestAdminLoginHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("super-secret"), bcrypt.MinCost)
	require.NoError(t, err)
	config.AppConfig.AdminKeyHash = string(hash)
	config.AppConfig.JWTSecret = "test-secret"
	t.Cleanup(func() {
		config.AppConfig.AdminKeyHash = ""
		config.AppConfig.JWTSecret = ""
	})

	router := gin.New()
	router.POST("/api/admin/login", AdminLoginHandler())

	t.Run("wrong key is rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/admin/login", gin.H{"key": "nope"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("correct key issues a valid token", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/admin/login", gin.H{"key": "super-secret"})
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.NotEmpty(t, body.Token)
		assert.NoError(t, utils.ValidateAdminToken(body.Token))
	})
}

func TestValidateAdminTokenExpiry(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	t.Cleanup(func() { config.AppConfig.JWTSecret = "" })

	token, err := utils.GenerateAdminToken(-time.Minute)
	require.NoError(t, err)
	assert.Error(t, utils.ValidateAdminToken(token), "expired token must be rejected")
}
