package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"portfolio_backend/internal/ordering"
	"portfolio_backend/internal/slug"
)

type Certificate struct {
	BaseModel
	ProfileID           uint           `gorm:"not null;index" json:"profile_id"`
	Title               string         `gorm:"size:200;not null" json:"title"`
	Slug                string         `gorm:"size:255;uniqueIndex" json:"slug"`
	IssuingOrganization string         `gorm:"size:200" json:"issuing_organization"`
	IssueDate           *time.Time     `json:"issue_date"`
	ExpiryDate          *time.Time     `json:"expiry_date"`
	DoesNotExpire       bool           `json:"does_not_expire"`
	CredentialID        string         `gorm:"size:200" json:"credential_id"`
	CredentialURL       string         `gorm:"size:500" json:"credential_url"`
	Description         string         `gorm:"type:text" json:"description"`
	Skills              datatypes.JSON `json:"skills"`
	Order               int            `gorm:"column:sort_order;default:0" json:"order"`
	OrganizationLogo    MediaReference `gorm:"embedded;embeddedPrefix:organization_logo_" json:"-"`
	CertificateImage    MediaReference `gorm:"embedded;embeddedPrefix:certificate_image_" json:"-"`
}

func (c *Certificate) BeforeSave(tx *gorm.DB) error {
	return slug.Ensure(tx, c)
}

func (c *Certificate) AfterDelete(tx *gorm.DB) error {
	return ordering.Compact(tx, c.OrderCollection())
}

func (c *Certificate) SlugSource() string  { return c.Title }
func (c *Certificate) GetSlug() string     { return c.Slug }
func (c *Certificate) SetSlug(slug string) { c.Slug = slug }

func (c *Certificate) OrderCollection() ordering.Collection {
	return ordering.Collection{Model: &Certificate{}, Filters: map[string]interface{}{"profile_id": c.ProfileID}}
}
func (c *Certificate) GetOrder() int      { return c.Order }
func (c *Certificate) SetOrder(order int) { c.Order = order }

func (c *Certificate) AttachmentOwner() (string, uint) { return OwnerCertificate, c.ID }

type AchievementType string

const (
	AchievementTypeAward       AchievementType = "award"
	AchievementTypeHackathon   AchievementType = "hackathon"
	AchievementTypePublication AchievementType = "publication"
	AchievementTypeSpeaking    AchievementType = "speaking"
	AchievementTypeOther       AchievementType = "other"
)

type Achievement struct {
	BaseModel
	ProfileID       uint            `gorm:"not null;index" json:"profile_id"`
	Title           string          `gorm:"size:200;not null" json:"title"`
	Slug            string          `gorm:"size:255;uniqueIndex" json:"slug"`
	AchievementType AchievementType `gorm:"size:20;default:award" json:"achievement_type"`
	Issuer          string          `gorm:"size:200" json:"issuer"`
	Date            *time.Time      `json:"date"`
	Description     string          `gorm:"type:text" json:"description"`
	URL             string          `gorm:"size:500" json:"url"`
	Order           int             `gorm:"column:sort_order;default:0" json:"order"`
	Image           MediaReference  `gorm:"embedded;embeddedPrefix:image_" json:"-"`
}

func (a *Achievement) BeforeSave(tx *gorm.DB) error {
	return slug.Ensure(tx, a)
}

func (a *Achievement) AfterDelete(tx *gorm.DB) error {
	return ordering.Compact(tx, a.OrderCollection())
}

func (a *Achievement) SlugSource() string  { return a.Title }
func (a *Achievement) GetSlug() string     { return a.Slug }
func (a *Achievement) SetSlug(slug string) { a.Slug = slug }

func (a *Achievement) OrderCollection() ordering.Collection {
	return ordering.Collection{Model: &Achievement{}, Filters: map[string]interface{}{"profile_id": a.ProfileID}}
}
func (a *Achievement) GetOrder() int      { return a.Order }
func (a *Achievement) SetOrder(order int) { a.Order = order }

func (a *Achievement) AttachmentOwner() (string, uint) { return OwnerAchievement, a.ID }
