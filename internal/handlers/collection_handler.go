package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/dto"
	"portfolio_backend/internal/services"
)

// CollectionHandler reorders and deletes members of ordered collections
// (skills, projects, testimonials, ...)
type CollectionHandler struct {
	*BaseHandler
	collectionService services.CollectionService
}

func NewCollectionHandler(base *BaseHandler, collectionService services.CollectionService) *CollectionHandler {
	return &CollectionHandler{
		BaseHandler:       base,
		collectionService: collectionService,
	}
}

func (h *CollectionHandler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	collections := admin.Group("/collections")
	{
		collections.PATCH("/:collection/:id/order", h.Move)
		collections.DELETE("/:collection/:id", h.Delete)
	}
}

// Move sets a member's order. As with image reorder, moving a member down leaves
// it at order-1 after compaction; the response carries the final order.
func (h *CollectionHandler) Move(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	var req dto.ReorderRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	member, err := h.collectionService.Move(c.Request.Context(), h.GetDB(c), c.Param("collection"), id, *req.Order)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *CollectionHandler) Delete(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if err := h.collectionService.Delete(c.Request.Context(), h.GetDB(c), c.Param("collection"), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
