package models

import (
	"time"

	"gorm.io/gorm"

	"portfolio_backend/internal/ordering"
	"portfolio_backend/internal/slug"
)

type BlogCategory struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Slug        string `gorm:"size:255;uniqueIndex" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	Order       int    `gorm:"column:sort_order;default:0" json:"order"`
}

func (BlogCategory) TableName() string {
	return "blog_categories"
}

func (c *BlogCategory) BeforeSave(tx *gorm.DB) error {
	return slug.Ensure(tx, c)
}

func (c *BlogCategory) AfterDelete(tx *gorm.DB) error {
	return ordering.Compact(tx, c.OrderCollection())
}

func (c *BlogCategory) SlugSource() string  { return c.Name }
func (c *BlogCategory) GetSlug() string     { return c.Slug }
func (c *BlogCategory) SetSlug(slug string) { c.Slug = slug }

// OrderCollection: categories form one global collection
func (c *BlogCategory) OrderCollection() ordering.Collection {
	return ordering.Collection{Model: &BlogCategory{}}
}
func (c *BlogCategory) GetOrder() int      { return c.Order }
func (c *BlogCategory) SetOrder(order int) { c.Order = order }

type BlogTag struct {
	BaseModel
	Name string `gorm:"size:50;not null" json:"name"`
	Slug string `gorm:"size:255;uniqueIndex" json:"slug"`
}

func (t *BlogTag) BeforeSave(tx *gorm.DB) error {
	return slug.Ensure(tx, t)
}

func (t *BlogTag) SlugSource() string  { return t.Name }
func (t *BlogTag) GetSlug() string     { return t.Slug }
func (t *BlogTag) SetSlug(slug string) { t.Slug = slug }

type BlogPostStatus string

const (
	BlogPostStatusDraft     BlogPostStatus = "draft"
	BlogPostStatusPublished BlogPostStatus = "published"
	BlogPostStatusArchived  BlogPostStatus = "archived"
)

type BlogPost struct {
	BaseModel
	Title   string `gorm:"size:200;not null" json:"title"`
	Slug    string `gorm:"size:255;uniqueIndex" json:"slug"`
	Excerpt string `gorm:"size:500" json:"excerpt"`
	Content string `gorm:"type:text" json:"content"`

	FeaturedImage    MediaReference `gorm:"embedded;embeddedPrefix:featured_image_" json:"-"`
	FeaturedImageAlt string         `gorm:"size:200" json:"featured_image_alt"`
	OGImage          MediaReference `gorm:"embedded;embeddedPrefix:og_image_" json:"-"`

	CategoryID *uint         `gorm:"index" json:"category_id"`
	Category   *BlogCategory `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Tags       []BlogTag     `gorm:"many2many:blog_post_tags" json:"tags,omitempty"`

	Status          BlogPostStatus `gorm:"size:20;default:draft;index" json:"status"`
	PublishedAt     *time.Time     `gorm:"index" json:"published_at"`
	ReadingTime     int            `gorm:"default:5" json:"reading_time"`
	ViewsCount      int            `gorm:"default:0" json:"views_count"`
	IsFeatured      bool           `json:"is_featured"`
	AllowComments   bool           `json:"allow_comments"`
	MetaTitle       string         `gorm:"size:60" json:"meta_title"`
	MetaDescription string         `gorm:"size:160" json:"meta_description"`
	MetaKeywords    string         `gorm:"size:255" json:"meta_keywords"`
	CanonicalURL    string         `gorm:"size:500" json:"canonical_url"`
	OGTitle         string         `gorm:"size:60" json:"og_title"`
	OGDescription   string         `gorm:"size:160" json:"og_description"`
	TwitterCardType string         `gorm:"size:30;default:summary_large_image" json:"twitter_card_type"`
	FocusKeyword    string         `gorm:"size:100" json:"focus_keyword"`
}

func (p *BlogPost) BeforeSave(tx *gorm.DB) error {
	return slug.Ensure(tx, p)
}

func (p *BlogPost) SlugSource() string  { return p.Title }
func (p *BlogPost) GetSlug() string     { return p.Slug }
func (p *BlogPost) SetSlug(slug string) { p.Slug = slug }

func (p *BlogPost) AttachmentOwner() (string, uint) { return OwnerBlogPost, p.ID }
