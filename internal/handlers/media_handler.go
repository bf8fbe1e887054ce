package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/dto"
	"portfolio_backend/internal/media"
	"portfolio_backend/internal/services"
	"portfolio_backend/pkg/apperrors"
)

type MediaHandler struct {
	*BaseHandler
	mediaService services.MediaService
}

func NewMediaHandler(base *BaseHandler, mediaService services.MediaService) *MediaHandler {
	return &MediaHandler{
		BaseHandler:  base,
		mediaService: mediaService,
	}
}

// RegisterRoutes registers the public streaming endpoint at the engine root
func (h *MediaHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/media/:entity/:id/:field", h.Stream)
}

func (h *MediaHandler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	m := admin.Group("/media")
	{
		m.PUT("/:entity/:id/:field", h.Set)
		m.DELETE("/:entity/:id/:field", h.Clear)
	}
}

// Stream serves one media slot: external URLs redirect, files and blobs stream
func (h *MediaHandler) Stream(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	payload, err := h.mediaService.Open(c.Request.Context(), h.GetDB(c), c.Param("entity"), id, c.Param("field"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	writePayload(c, payload)
}

// Set replaces the slot with an uploaded file (multipart "file") or an external
// URL (form/json "url"). Exactly one must be given.
func (h *MediaHandler) Set(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	entity, field := c.Param("entity"), c.Param("field")
	ctx := c.Request.Context()

	file, err := h.ReadUpload(c, "file")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if file != nil {
		if c.PostForm("url") != "" {
			h.HandleServiceError(c, apperrors.ErrInvalidInput("media", "Provide either a file or a url, not both", map[string]string{
				"file": "conflicts with url",
				"url":  "conflicts with file",
			}))
			return
		}
		err = h.mediaService.Upload(ctx, h.GetDB(c), entity, id, field, file)
	} else {
		var req dto.SetMediaURLRequest
		if !h.BindAndValidate_Form(c, &req) {
			return
		}
		err = h.mediaService.SetURL(ctx, h.GetDB(c), entity, id, field, req.URL)
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Clear empties the slot and deletes its stored file
func (h *MediaHandler) Clear(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if err := h.mediaService.Clear(c.Request.Context(), h.GetDB(c), c.Param("entity"), id, c.Param("field")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

var headerSafe = strings.NewReplacer(`"`, "", `\`, "", "\r", "", "\n", "")

// writePayload sends a resolved media slot
func writePayload(c *gin.Context, payload *services.MediaPayload) {
	if payload.Kind == media.KindExternal {
		c.Redirect(http.StatusFound, payload.RedirectURL)
		return
	}
	defer payload.Body.Close()

	c.Header("Content-Type", payload.MimeType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, headerSafe.Replace(payload.Filename)))
	if payload.Size >= 0 {
		c.Header("Content-Length", strconv.FormatInt(payload.Size, 10))
	}
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, payload.Body); err != nil {
		// Headers are already sent
		_ = c.Error(fmt.Errorf("stream media: %w", err))
	}
}
