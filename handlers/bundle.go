package handlers

import (
	catalogRepoPkg "radiant/database/repository/catalog"
	"radiant/services/routing"
	"radiant/services/scheduling"
	"radiant/services/session"
	"radiant/services/verification"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Gateway     scheduling.Gateway
	Routing     routing.RoutingService
	Flow        verification.FlowService
	Tracker     session.TrackerService
	CatalogRepo catalogRepoPkg.CatalogRepository
	Queue       *asynq.Client

	// Availability endpoints
	BookableDatesHandler gin.HandlerFunc
	BookableTimesHandler gin.HandlerFunc

	// Cart endpoints
	CreateCartHandler   gin.HandlerFunc
	ReserveCartHandler  gin.HandlerFunc
	AttachClientHandler gin.HandlerFunc
	CheckoutHandler     gin.HandlerFunc

	// Verification endpoints
	SendVerificationHandler    gin.HandlerFunc
	ConfirmVerificationHandler gin.HandlerFunc

	// Staff endpoints
	RouteStaffHandler        gin.HandlerFunc
	StaffAvailabilityHandler gin.HandlerFunc

	// Session endpoints
	CreateSessionHandler gin.HandlerFunc
	UpdateSessionHandler gin.HandlerFunc

	// Catalog endpoints
	SearchCatalogHandler gin.HandlerFunc

	// Admin endpoints
	AdminLoginHandler  gin.HandlerFunc
	SyncCatalogHandler gin.HandlerFunc
}

// NewHandlerBundle wires every handler to its service.
func NewHandlerBundle(
	gateway scheduling.Gateway,
	routingSvc routing.RoutingService,
	flow verification.FlowService,
	tracker session.TrackerService,
	catalog catalogRepoPkg.CatalogRepository,
	queue *asynq.Client,
) *HandlerBundle {
	hb := &HandlerBundle{
		Gateway:     gateway,
		Routing:     routingSvc,
		Flow:        flow,
		Tracker:     tracker,
		CatalogRepo: catalog,
		Queue:       queue,
	}

	hb.BookableDatesHandler = BookableDatesHandler(gateway)
	hb.BookableTimesHandler = BookableTimesHandler(gateway)

	hb.CreateCartHandler = CreateCartHandler(gateway)
	hb.ReserveCartHandler = ReserveCartHandler(gateway)
	hb.AttachClientHandler = AttachClientHandler(gateway)
	hb.CheckoutHandler = CheckoutHandler(gateway)

	hb.SendVerificationHandler = SendVerificationHandler(flow)
	hb.ConfirmVerificationHandler = ConfirmVerificationHandler(flow)

	hb.RouteStaffHandler = RouteStaffHandler(routingSvc)
	hb.StaffAvailabilityHandler = StaffAvailabilityHandler(gateway)

	hb.CreateSessionHandler = CreateSessionHandler(tracker)
	hb.UpdateSessionHandler = UpdateSessionHandler(tracker)

	hb.SearchCatalogHandler = SearchCatalogHandler(catalog)

	hb.AdminLoginHandler = AdminLoginHandler()
	hb.SyncCatalogHandler = SyncCatalogHandler(queue)

	return hb
}
