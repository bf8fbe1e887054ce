package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"portfolio_backend/internal/ordering"
)

type ImageType string

const (
	ImageTypeCover     ImageType = "cover"
	ImageTypeGallery   ImageType = "gallery"
	ImageTypeThumbnail ImageType = "thumbnail"
	ImageTypeLogo      ImageType = "logo"
	ImageTypeAvatar    ImageType = "avatar"
	ImageTypeOG        ImageType = "og"
	ImageTypeOther     ImageType = "other"
)

// Image is a generic attachment. The owner is an (owner_type, owner_id) pair
// with no foreign key; OwnerType must be a registered attachable tag.
type Image struct {
	BaseModel
	UUID      string `gorm:"size:36;uniqueIndex;not null" json:"uuid"`
	OwnerType string `gorm:"size:50;not null;index:idx_images_owner,priority:1" json:"owner_type"`
	OwnerID   uint   `gorm:"not null;index:idx_images_owner,priority:2" json:"owner_id"`

	Image MediaReference `gorm:"embedded;embeddedPrefix:image_" json:"-"`

	FileSize   int64     `json:"file_size"`
	Width      *int      `json:"width"`
	Height     *int      `json:"height"`
	ImageType  ImageType `gorm:"size:20;default:gallery" json:"image_type"`
	AltText    string    `gorm:"size:255" json:"alt_text"`
	Caption    string    `gorm:"size:500" json:"caption"`
	Order      int       `gorm:"column:sort_order;default:0;index:idx_images_owner,priority:3" json:"order"`
	ShowOnHome bool      `gorm:"default:false" json:"show_on_home"`
}

func (Image) TableName() string {
	return "images"
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.UUID == "" {
		i.UUID = uuid.NewString()
	}
	if i.ImageType == "" {
		i.ImageType = ImageTypeGallery
	}
	return nil
}

func (i *Image) AfterDelete(tx *gorm.DB) error {
	return ordering.Compact(tx, i.OrderCollection())
}

func (i *Image) OrderCollection() ordering.Collection {
	return ordering.Collection{
		Model:   &Image{},
		Filters: map[string]interface{}{"owner_type": i.OwnerType, "owner_id": i.OwnerID},
	}
}

func (i *Image) GetOrder() int      { return i.Order }
func (i *Image) SetOrder(order int) { i.Order = order }

// ValidImageType reports whether t is one of the classification tags
func ValidImageType(t ImageType) bool {
	switch t {
	case ImageTypeCover, ImageTypeGallery, ImageTypeThumbnail, ImageTypeLogo,
		ImageTypeAvatar, ImageTypeOG, ImageTypeOther:
		return true
	}
	return false
}
