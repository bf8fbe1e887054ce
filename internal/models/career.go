package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"portfolio_backend/internal/ordering"
	"portfolio_backend/internal/slug"
)

type Education struct {
	BaseModel
	ProfileID    uint       `gorm:"not null;index" json:"profile_id"`
	Institution  string     `gorm:"size:200;not null" json:"institution"`
	Slug         string     `gorm:"size:255;uniqueIndex" json:"slug"`
	Degree       string     `gorm:"size:200" json:"degree"`
	FieldOfStudy string     `gorm:"size:200" json:"field_of_study"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	IsCurrent    bool       `json:"is_current"`
	Grade        string     `gorm:"size:50" json:"grade"`
	Description  string     `gorm:"type:text" json:"description"`
	Location     string     `gorm:"size:200" json:"location"`

	Logo MediaReference `gorm:"embedded;embeddedPrefix:logo_" json:"-"`
}

func (Education) TableName() string {
	return "education"
}

func (e *Education) BeforeSave(tx *gorm.DB) error {
	return slug.Ensure(tx, e)
}

// SlugSource joins institution and degree so two degrees at one school differ
func (e *Education) SlugSource() string {
	return strings.TrimSpace(e.Institution + " " + e.Degree)
}
func (e *Education) GetSlug() string     { return e.Slug }
func (e *Education) SetSlug(slug string) { e.Slug = slug }

func (e *Education) AttachmentOwner() (string, uint) { return OwnerEducation, e.ID }

type WorkExperience struct {
	BaseModel
	ProfileID      uint           `gorm:"not null;index" json:"profile_id"`
	CompanyName    string         `gorm:"size:200;not null" json:"company_name"`
	CompanyURL     string         `gorm:"size:500" json:"company_url"`
	JobTitle       string         `gorm:"size:200;not null" json:"job_title"`
	EmploymentType string         `gorm:"size:20;default:full_time" json:"employment_type"`
	WorkMode       string         `gorm:"size:20;default:onsite" json:"work_mode"`
	Location       string         `gorm:"size:200" json:"location"`
	StartDate      *time.Time     `json:"start_date"`
	EndDate        *time.Time     `json:"end_date"`
	IsCurrent      bool           `json:"is_current"`
	Description    string         `gorm:"type:text" json:"description"`
	Achievements   string         `gorm:"type:text" json:"achievements"`
	Technologies   datatypes.JSON `json:"technologies_used"`
	Order          int            `gorm:"column:sort_order;default:0" json:"order"`

	CompanyLogo MediaReference `gorm:"embedded;embeddedPrefix:company_logo_" json:"-"`
}

func (w *WorkExperience) AfterDelete(tx *gorm.DB) error {
	return ordering.Compact(tx, w.OrderCollection())
}

func (w *WorkExperience) OrderCollection() ordering.Collection {
	return ordering.Collection{Model: &WorkExperience{}, Filters: map[string]interface{}{"profile_id": w.ProfileID}}
}
func (w *WorkExperience) GetOrder() int      { return w.Order }
func (w *WorkExperience) SetOrder(order int) { w.Order = order }

func (w *WorkExperience) AttachmentOwner() (string, uint) { return OwnerWorkExperience, w.ID }
