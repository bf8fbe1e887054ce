package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"portfolio_backend/internal/ordering"
	"portfolio_backend/internal/slug"
)

type ProjectStatus string

const (
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusArchived   ProjectStatus = "archived"
)

type Project struct {
	BaseModel
	ProfileID        uint   `gorm:"not null;index" json:"profile_id"`
	Title            string `gorm:"size:200;not null" json:"title"`
	Slug             string `gorm:"size:255;uniqueIndex" json:"slug"`
	ShortDescription string `gorm:"size:300" json:"short_description"`
	Description      string `gorm:"type:text" json:"description"`

	FeaturedImage    MediaReference `gorm:"embedded;embeddedPrefix:featured_image_" json:"-"`
	FeaturedImageAlt string         `gorm:"size:200" json:"featured_image_alt"`

	LiveURL   string `gorm:"size:500" json:"live_url"`
	GithubURL string `gorm:"size:500" json:"github_url"`
	DemoURL   string `gorm:"size:500" json:"demo_url"`

	Technologies datatypes.JSON `json:"technologies"`
	Role         string         `gorm:"size:100" json:"role"`
	TeamSize     int            `gorm:"default:1" json:"team_size"`
	StartDate    *time.Time     `json:"start_date"`
	EndDate      *time.Time     `json:"end_date"`
	Status       ProjectStatus  `gorm:"size:20;default:completed" json:"status"`
	IsFeatured   bool           `json:"is_featured"`
	IsVisible    bool           `json:"is_visible"`
	Order        int            `gorm:"column:sort_order;default:0" json:"order"`
}

func (p *Project) BeforeSave(tx *gorm.DB) error {
	return slug.Ensure(tx, p)
}

func (p *Project) AfterDelete(tx *gorm.DB) error {
	return ordering.Compact(tx, p.OrderCollection())
}

func (p *Project) SlugSource() string  { return p.Title }
func (p *Project) GetSlug() string     { return p.Slug }
func (p *Project) SetSlug(slug string) { p.Slug = slug }

func (p *Project) OrderCollection() ordering.Collection {
	return ordering.Collection{Model: &Project{}, Filters: map[string]interface{}{"profile_id": p.ProfileID}}
}
func (p *Project) GetOrder() int      { return p.Order }
func (p *Project) SetOrder(order int) { p.Order = order }

func (p *Project) AttachmentOwner() (string, uint) { return OwnerProject, p.ID }
