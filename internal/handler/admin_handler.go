package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/staylodge/service-reservation/internal/application"
	"github.com/staylodge/service-reservation/internal/common/auth"
	"github.com/staylodge/service-reservation/internal/common/middleware"
	"github.com/staylodge/service-reservation/internal/common/response"
)

// AdminHandler handles admin HTTP requests for reservation and provider maintenance.
type AdminHandler struct {
	reservations *application.ReservationService
	listings     *application.ListingService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(reservations *application.ReservationService, listings *application.ListingService) *AdminHandler {
	return &AdminHandler{reservations: reservations, listings: listings}
}

// RegisterRoutes registers admin routes.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminRole := middleware.RequireRole(auth.RoleAdmin)

	admin := r.Group("/api/v1/admin")
	admin.Use(authMW, adminRole)
	{
		admin.GET("/reservations", h.ListReservations)
		admin.GET("/providers/:id", h.GetProvider)
		admin.POST("/providers/:id/recount", h.RecountListings)
	}
}

// ListReservations handles GET /api/v1/admin/reservations.
func (h *AdminHandler) ListReservations(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	q, ok := parseReservationQuery(c)
	if !ok {
		return
	}
	page, limit := parsePagination(c)

	result, err := h.reservations.Search(c.Request.Context(), identity, q, c.Query("status"), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetProvider handles GET /api/v1/admin/providers/:id.
func (h *AdminHandler) GetProvider(c *gin.Context) {
	result, err := h.listings.GetProvider(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RecountListings handles POST /api/v1/admin/providers/:id/recount.
func (h *AdminHandler) RecountListings(c *gin.Context) {
	result, err := h.listings.RecountListings(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
