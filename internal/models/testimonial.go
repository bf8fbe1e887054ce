package models

import (
	"time"

	"gorm.io/gorm"

	"portfolio_backend/internal/ordering"
	"portfolio_backend/internal/slug"
)

type Testimonial struct {
	BaseModel
	ProfileID     uint       `gorm:"not null;index" json:"profile_id"`
	AuthorName    string     `gorm:"size:200;not null" json:"author_name"`
	Slug          string     `gorm:"size:255;uniqueIndex" json:"slug"`
	AuthorTitle   string     `gorm:"size:200" json:"author_title"`
	AuthorCompany string     `gorm:"size:200" json:"author_company"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	Rating        int        `gorm:"default:5" json:"rating"`
	Relationship  string     `gorm:"size:100" json:"relationship"`
	LinkedinURL   string     `gorm:"size:500" json:"linkedin_url"`
	IsFeatured    bool       `json:"is_featured"`
	IsVisible     bool       `json:"is_visible"`
	Date          *time.Time `json:"date"`
	Order         int        `gorm:"column:sort_order;default:0" json:"order"`

	AuthorImage MediaReference `gorm:"embedded;embeddedPrefix:author_image_" json:"-"`
}

func (t *Testimonial) BeforeSave(tx *gorm.DB) error {
	return slug.Ensure(tx, t)
}

func (t *Testimonial) AfterDelete(tx *gorm.DB) error {
	return ordering.Compact(tx, t.OrderCollection())
}

func (t *Testimonial) SlugSource() string  { return t.AuthorName }
func (t *Testimonial) GetSlug() string     { return t.Slug }
func (t *Testimonial) SetSlug(slug string) { t.Slug = slug }

func (t *Testimonial) OrderCollection() ordering.Collection {
	return ordering.Collection{Model: &Testimonial{}, Filters: map[string]interface{}{"profile_id": t.ProfileID}}
}
func (t *Testimonial) GetOrder() int      { return t.Order }
func (t *Testimonial) SetOrder(order int) { t.Order = order }

func (t *Testimonial) AttachmentOwner() (string, uint) { return OwnerTestimonial, t.ID }
