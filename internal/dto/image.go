package dto

import "time"

type ImageResponse struct {
	UUID       string    `json:"uuid"`
	OwnerType  string    `json:"owner_type"`
	OwnerID    uint      `json:"owner_id"`
	Image      *Media    `json:"image"`
	Filename   string    `json:"filename,omitempty"`
	MimeType   string    `json:"mime_type,omitempty"`
	FileSize   int64     `json:"file_size"`
	Width      *int      `json:"width"`
	Height     *int      `json:"height"`
	ImageType  string    `json:"image_type"`
	AltText    string    `json:"alt_text"`
	Caption    string    `json:"caption"`
	Order      int       `json:"order"`
	ShowOnHome bool      `json:"show_on_home"`
	CreatedAt  time.Time `json:"created_at"`
}

// AttachImageForm is the multipart body of POST /api/admin/images. The file part
// is read separately by the handler.
type AttachImageForm struct {
	OwnerType  string `form:"owner_type" validate:"required,owner-type"`
	OwnerID    uint   `form:"owner_id" validate:"required"`
	URL        string `form:"url" validate:"omitempty,url,max=1024"`
	ImageType  string `form:"image_type" validate:"image-type"`
	AltText    string `form:"alt_text" validate:"max=255"`
	Caption    string `form:"caption" validate:"max=500"`
	Order      *int   `form:"order" validate:"omitempty,min=0"`
	ShowOnHome bool   `form:"show_on_home"`
}

// ReorderRequest moves one collection member
type ReorderRequest struct {
	Order *int `json:"order" validate:"required,min=0"`
}
