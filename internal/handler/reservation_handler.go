package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/staylodge/service-reservation/internal/application"
	"github.com/staylodge/service-reservation/internal/common/auth"
	"github.com/staylodge/service-reservation/internal/common/middleware"
	"github.com/staylodge/service-reservation/internal/common/response"
)

// ReservationHandler handles HTTP requests for reservation operations.
type ReservationHandler struct {
	service *application.ReservationService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(service *application.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

// RegisterRoutes registers all reservation routes on the given router group.
func (h *ReservationHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	reservations := r.Group("/api/v1/reservations")
	reservations.Use(authMW)
	{
		reservations.POST("", h.CreateReservation)
		reservations.GET("", h.ListReservations)
		reservations.GET("/active", h.ActiveReservations)
		reservations.GET("/history", h.ReservationHistory)
		reservations.GET("/folio/:folio", h.GetByFolio)
		reservations.GET("/listing/:listingId", middleware.RequireRole(auth.RoleProvider, auth.RoleAdmin), h.ListForListing)
		reservations.GET("/client/:clientId/history", h.ClientHistory)
		reservations.GET("/:id", h.GetReservation)
		reservations.PATCH("/:id/status", h.ChangeStatus)
		reservations.POST("/:id/receipt", h.AttachReceipt)
	}
}

// CreateReservation handles POST /api/v1/reservations.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	var req application.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateReservation(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetReservation handles GET /api/v1/reservations/:id.
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	identity, _ := middleware.GetIdentity(c)

	result, err := h.service.GetReservation(c.Request.Context(), identity, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetByFolio handles GET /api/v1/reservations/folio/:folio.
func (h *ReservationHandler) GetByFolio(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	result, err := h.service.GetByFolio(c.Request.Context(), identity, c.Param("folio"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ChangeStatus handles PATCH /api/v1/reservations/:id/status.
func (h *ReservationHandler) ChangeStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	identity, _ := middleware.GetIdentity(c)

	var req application.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ChangeStatus(c.Request.Context(), identity, id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AttachReceipt handles POST /api/v1/reservations/:id/receipt.
func (h *ReservationHandler) AttachReceipt(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	identity, _ := middleware.GetIdentity(c)

	var req application.AttachReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AttachReceipt(c.Request.Context(), identity, id, req.ReceiptURL)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListReservations handles GET /api/v1/reservations.
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	q, ok := parseReservationQuery(c)
	if !ok {
		return
	}
	page, limit := parsePagination(c)

	result, err := h.service.Search(c.Request.Context(), identity, q, c.Query("status"), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// ActiveReservations handles GET /api/v1/reservations/active.
func (h *ReservationHandler) ActiveReservations(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	q, ok := parseReservationQuery(c)
	if !ok {
		return
	}
	page, limit := parsePagination(c)

	result, err := h.service.Active(c.Request.Context(), identity, q, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// ReservationHistory handles GET /api/v1/reservations/history.
func (h *ReservationHandler) ReservationHistory(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	q, ok := parseReservationQuery(c)
	if !ok {
		return
	}
	page, limit := parsePagination(c)

	result, err := h.service.History(c.Request.Context(), identity, q, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// ListForListing handles GET /api/v1/reservations/listing/:listingId.
func (h *ReservationHandler) ListForListing(c *gin.Context) {
	listingID, ok := parseIDParam(c, "listingId")
	if !ok {
		return
	}
	identity, _ := middleware.GetIdentity(c)
	page, limit := parsePagination(c)

	result, err := h.service.ListForListing(c.Request.Context(), identity, listingID, c.Query("status"), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// ClientHistory handles GET /api/v1/reservations/client/:clientId/history.
func (h *ReservationHandler) ClientHistory(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	page, limit := parsePagination(c)

	result, err := h.service.ClientHistory(c.Request.Context(), identity, c.Param("clientId"), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// parsePagination extracts page and limit query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}

// parseIDParam reads a positive integer path parameter, writing a 400 if it is malformed.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func parseReservationQuery(c *gin.Context) (application.ReservationQuery, bool) {
	q := application.ReservationQuery{ClientID: c.Query("client_id")}
	if raw := c.Query("listing_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.BadRequest(c, "invalid listing_id")
			return q, false
		}
		q.ListingID = uint(id)
	}
	return q, true
}
