package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"portfolio_backend/internal/dto"
	"portfolio_backend/internal/services"
)

// ContentHandler serves the read-only API consumed by the frontend
type ContentHandler struct {
	*BaseHandler
	contentService services.ContentService
}

func NewContentHandler(base *BaseHandler, contentService services.ContentService) *ContentHandler {
	return &ContentHandler{
		BaseHandler:    base,
		contentService: contentService,
	}
}

func (h *ContentHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/profile", h.Profile)
	r.GET("/config/current", h.SiteConfiguration)

	r.GET("/projects", h.Projects)
	r.GET("/projects/:slug", h.Project)

	blog := r.Group("/blog")
	{
		blog.GET("/posts", h.Posts)
		blog.GET("/posts/:slug", h.Post)
		blog.GET("/categories", h.list(h.contentService.Categories))
		blog.GET("/tags", h.list(h.contentService.Tags))
	}

	r.GET("/skills", h.list(h.contentService.Skills))
	r.GET("/social-links", h.list(h.contentService.SocialLinks))
	r.GET("/certificates", h.list(h.contentService.Certificates))
	r.GET("/certificates/:slug", h.detail(h.contentService.Certificate))
	r.GET("/achievements", h.list(h.contentService.Achievements))
	r.GET("/achievements/:slug", h.detail(h.contentService.Achievement))
	r.GET("/testimonials", h.list(h.contentService.Testimonials))
	r.GET("/testimonials/:slug", h.detail(h.contentService.Testimonial))
	r.GET("/education", h.list(h.contentService.Education))
	r.GET("/education/:slug", h.detail(h.contentService.EducationEntry))
	r.GET("/experience", h.list(h.contentService.Experience))
}

type listFunc func(ctx context.Context, db *gorm.DB) ([]dto.Record, error)

type detailFunc func(ctx context.Context, db *gorm.DB, slug string) (dto.Record, error)

func (h *ContentHandler) detail(fetch detailFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := fetch(c.Request.Context(), h.GetDB(c), c.Param("slug"))
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func (h *ContentHandler) list(fetch listFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := fetch(c.Request.Context(), h.GetDB(c))
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ListResponse{Items: items, Total: len(items)})
	}
}

func (h *ContentHandler) Profile(c *gin.Context) {
	profile, err := h.contentService.Profile(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ContentHandler) SiteConfiguration(c *gin.Context) {
	cfg, err := h.contentService.SiteConfiguration(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// Projects lists visible projects; ?featured=true keeps featured ones only
func (h *ContentHandler) Projects(c *gin.Context) {
	items, err := h.contentService.Projects(c.Request.Context(), h.GetDB(c), ParseQueryBool(c, "featured"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse{Items: items, Total: len(items)})
}

func (h *ContentHandler) Project(c *gin.Context) {
	project, err := h.contentService.Project(c.Request.Context(), h.GetDB(c), c.Param("slug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// Posts lists published posts, optionally filtered by ?category= and ?tag= slugs
func (h *ContentHandler) Posts(c *gin.Context) {
	items, err := h.contentService.Posts(c.Request.Context(), h.GetDB(c), c.Query("category"), c.Query("tag"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse{Items: items, Total: len(items)})
}

func (h *ContentHandler) Post(c *gin.Context) {
	post, err := h.contentService.Post(c.Request.Context(), h.GetDB(c), c.Param("slug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}
