package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/dto"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/services"
	"portfolio_backend/pkg/apperrors"
)

type ImageHandler struct {
	*BaseHandler
	imageService services.ImageService
}

func NewImageHandler(base *BaseHandler, imageService services.ImageService) *ImageHandler {
	return &ImageHandler{
		BaseHandler:  base,
		imageService: imageService,
	}
}

func (h *ImageHandler) RegisterRoutes(r *gin.RouterGroup) {
	images := r.Group("/images")
	{
		images.GET("", h.List)
		images.GET("/:uuid", h.Get)
		images.GET("/:uuid/data", h.Stream)
	}
}

func (h *ImageHandler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	images := admin.Group("/images")
	{
		images.POST("", h.Attach)
		images.PATCH("/:uuid/order", h.Reorder)
		images.DELETE("/:uuid", h.Delete)
	}
}

// List returns images of one owner (?owner_type=&owner_id=) or, with ?home=true,
// every image flagged for the homepage
func (h *ImageHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	db := h.GetDB(c)

	var (
		images []models.Image
		err    error
	)
	if ParseQueryBool(c, "home") {
		images, err = h.imageService.ListHome(db)
	} else {
		ownerType := c.Query("owner_type")
		ownerID, convErr := strconv.ParseUint(c.Query("owner_id"), 10, 64)
		if ownerType == "" || convErr != nil {
			h.HandleServiceError(c, apperrors.ErrInvalidInput("image", "owner_type and owner_id are required", map[string]string{
				"owner_type": c.Query("owner_type"),
				"owner_id":   c.Query("owner_id"),
			}))
			return
		}
		images, err = h.imageService.ListFor(db, ownerType, uint(ownerID))
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": h.imageService.PresentAll(ctx, images), "total": len(images)})
}

func (h *ImageHandler) Get(c *gin.Context) {
	image, err := h.imageService.Get(h.GetDB(c), c.Param("uuid"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.imageService.Present(c.Request.Context(), image))
}

func (h *ImageHandler) Stream(c *gin.Context) {
	payload, err := h.imageService.Open(c.Request.Context(), h.GetDB(c), c.Param("uuid"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	writePayload(c, payload)
}

// Attach takes a multipart form with either a "file" part or a "url" field
func (h *ImageHandler) Attach(c *gin.Context) {
	var form dto.AttachImageForm
	if !h.BindAndValidate_Form(c, &form) {
		return
	}
	file, err := h.ReadUpload(c, "file")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	image, err := h.imageService.Attach(c.Request.Context(), h.GetDB(c), services.AttachImageRequest{
		OwnerType:  form.OwnerType,
		OwnerID:    form.OwnerID,
		File:       file,
		URL:        form.URL,
		ImageType:  models.ImageType(form.ImageType),
		AltText:    form.AltText,
		Caption:    form.Caption,
		Order:      form.Order,
		ShowOnHome: form.ShowOnHome,
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.imageService.Present(c.Request.Context(), image))
}

// Reorder moves an image to the requested order. A move towards the end lands one
// slot before the requested position once the gap it leaves is closed, so clients
// must read the order back from the response.
func (h *ImageHandler) Reorder(c *gin.Context) {
	var req dto.ReorderRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	image, err := h.imageService.Reorder(h.GetDB(c), c.Param("uuid"), *req.Order)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.imageService.Present(c.Request.Context(), image))
}

func (h *ImageHandler) Delete(c *gin.Context) {
	if err := h.imageService.Delete(c.Request.Context(), h.GetDB(c), c.Param("uuid")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
