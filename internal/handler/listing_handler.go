package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/staylodge/service-reservation/internal/application"
	"github.com/staylodge/service-reservation/internal/common/auth"
	"github.com/staylodge/service-reservation/internal/common/middleware"
	"github.com/staylodge/service-reservation/internal/common/response"
)

// ListingHandler handles HTTP requests for listings and provider profiles.
type ListingHandler struct {
	listings     *application.ListingService
	reservations *application.ReservationService
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(listings *application.ListingService, reservations *application.ReservationService) *ListingHandler {
	return &ListingHandler{listings: listings, reservations: reservations}
}

// RegisterRoutes registers all listing routes.
func (h *ListingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	providerOrAdmin := middleware.RequireRole(auth.RoleProvider, auth.RoleAdmin)

	public := r.Group("/api/v1/listings")
	{
		public.GET("", h.ListListings)
		public.GET("/:id", h.GetListing)
		public.GET("/:id/calendar", h.Calendar)
	}

	owned := r.Group("/api/v1/listings")
	owned.Use(authMW)
	{
		owned.GET("/mine", middleware.RequireRole(auth.RoleProvider), h.MyListings)
		owned.POST("", middleware.RequireRole(auth.RoleProvider), h.CreateListing)
		owned.PUT("/:id", providerOrAdmin, h.UpdateListing)
		owned.DELETE("/:id", providerOrAdmin, h.DeleteListing)
	}

	providers := r.Group("/api/v1/providers")
	providers.Use(authMW, middleware.RequireRole(auth.RoleProvider))
	{
		providers.POST("/me", h.RegisterProvider)
		providers.GET("/me", h.GetMyProvider)
	}
}

// ListListings handles GET /api/v1/listings.
func (h *ListingHandler) ListListings(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.listings.ListListings(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetListing handles GET /api/v1/listings/:id.
func (h *ListingHandler) GetListing(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.listings.GetListing(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Calendar handles GET /api/v1/listings/:id/calendar.
func (h *ListingHandler) Calendar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.reservations.Calendar(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// MyListings handles GET /api/v1/listings/mine.
func (h *ListingHandler) MyListings(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	result, err := h.listings.ListProviderListings(c.Request.Context(), identity.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreateListing handles POST /api/v1/listings.
func (h *ListingHandler) CreateListing(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	var req application.ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.listings.CreateListing(c.Request.Context(), identity, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateListing handles PUT /api/v1/listings/:id.
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	identity, _ := middleware.GetIdentity(c)

	var req application.ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.listings.UpdateListing(c.Request.Context(), identity, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteListing handles DELETE /api/v1/listings/:id.
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	identity, _ := middleware.GetIdentity(c)

	if err := h.listings.DeleteListing(c.Request.Context(), identity, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// RegisterProvider handles POST /api/v1/providers/me.
func (h *ListingHandler) RegisterProvider(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	var req application.RegisterProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.listings.RegisterProvider(c.Request.Context(), identity, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetMyProvider handles GET /api/v1/providers/me.
func (h *ListingHandler) GetMyProvider(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	result, err := h.listings.GetProvider(c.Request.Context(), identity.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
