package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/dto"
	"portfolio_backend/internal/services"
)

// ContactHandler accepts public contact form submissions and lets the admin
// triage them
type ContactHandler struct {
	*BaseHandler
	contactService services.ContactService
}

func NewContactHandler(base *BaseHandler, contactService services.ContactService) *ContactHandler {
	return &ContactHandler{
		BaseHandler:    base,
		contactService: contactService,
	}
}

func (h *ContactHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/contact", h.Submit)
}

func (h *ContactHandler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	messages := admin.Group("/contact-messages")
	{
		messages.GET("", h.List)
		messages.PATCH("/:id/status", h.SetStatus)
	}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req dto.ContactRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	if _, err := h.contactService.Submit(c.Request.Context(), h.GetDB(c), req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ContactResponse{Message: services.ContactThanks})
}

// List returns submissions newest first, optionally filtered by ?status=
func (h *ContactHandler) List(c *gin.Context) {
	messages, err := h.contactService.List(c.Request.Context(), h.GetDB(c), c.Query("status"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": messages, "total": len(messages)})
}

func (h *ContactHandler) SetStatus(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	var req dto.ContactStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	message, err := h.contactService.SetStatus(c.Request.Context(), h.GetDB(c), id, req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, message)
}
