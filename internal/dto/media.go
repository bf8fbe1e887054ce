package dto

import (
	"portfolio_backend/internal/media"
)

// Media is the serialized form of one media slot
type Media struct {
	URL        string `json:"url" example:"https://cdn.example.com/projects/3f2a9c1e_cover.jpg"`
	IsExternal bool   `json:"is_external" example:"false"`
	MimeType   string `json:"mime_type,omitempty" example:"image/jpeg"`
}

// NewMedia converts a resolved slot; nil when the slot is empty
func NewMedia(r media.Resolved, streamPath string) *Media {
	if r.IsNone() {
		return nil
	}
	return &Media{
		URL:        r.PublicURL(streamPath),
		IsExternal: r.IsExternal,
		MimeType:   r.MimeType,
	}
}

// SetMediaURLRequest is the form/json body of PUT /media/... without a file
type SetMediaURLRequest struct {
	URL string `form:"url" json:"url" validate:"required,url,max=1024"`
}
