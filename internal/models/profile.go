package models

import (
	"gorm.io/gorm"

	"portfolio_backend/internal/ordering"
	"portfolio_backend/pkg/apperrors"
)

// Profile is a singleton (id 1) owning most ordered collections
type Profile struct {
	BaseModel
	FullName          string `gorm:"size:200" json:"full_name"`
	Headline          string `gorm:"size:300" json:"headline"`
	Bio               string `gorm:"type:text" json:"bio"`
	Email             string `gorm:"size:254" json:"email"`
	Phone             string `gorm:"size:20" json:"phone"`
	Location          string `gorm:"size:200" json:"location"`
	YearsOfExperience int    `gorm:"default:0" json:"years_of_experience"`
	CurrentRole       string `gorm:"size:200" json:"current_role"`
	CurrentCompany    string `gorm:"size:200" json:"current_company"`
	AvailableForHire  bool   `json:"available_for_hire"`

	ProfileImage MediaReference `gorm:"embedded;embeddedPrefix:profile_image_" json:"-"`
	Resume       MediaReference `gorm:"embedded;embeddedPrefix:resume_" json:"-"`

	SocialLinks []SocialLink `gorm:"foreignKey:ProfileID" json:"social_links,omitempty"`
	Skills      []Skill      `gorm:"foreignKey:ProfileID" json:"skills,omitempty"`
}

func (p *Profile) BeforeDelete(tx *gorm.DB) error {
	return apperrors.ErrSingletonDelete
}

func (p *Profile) AttachmentOwner() (string, uint) { return OwnerProfile, p.ID }

type SocialLink struct {
	BaseModel
	ProfileID uint   `gorm:"not null;index" json:"profile_id"`
	Platform  string `gorm:"size:50;not null" json:"platform"`
	URL       string `gorm:"size:500;not null" json:"url"`
	Icon      string `gorm:"size:50" json:"icon"`
	Order     int    `gorm:"column:sort_order;default:0" json:"order"`
}

func (s *SocialLink) OrderCollection() ordering.Collection {
	return ordering.Collection{Model: &SocialLink{}, Filters: map[string]interface{}{"profile_id": s.ProfileID}}
}
func (s *SocialLink) GetOrder() int      { return s.Order }
func (s *SocialLink) SetOrder(order int) { s.Order = order }
func (s *SocialLink) AfterDelete(tx *gorm.DB) error {
	return ordering.Compact(tx, s.OrderCollection())
}

type SkillType string

const (
	SkillTypeTechnical SkillType = "technical"
	SkillTypeSoft      SkillType = "soft"
	SkillTypeLanguage  SkillType = "language"
	SkillTypeTool      SkillType = "tool"
)

type Skill struct {
	BaseModel
	ProfileID   uint      `gorm:"not null;index" json:"profile_id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	SkillType   SkillType `gorm:"size:20;default:technical" json:"skill_type"`
	Proficiency int       `gorm:"default:50" json:"proficiency"`
	Icon        string    `gorm:"size:50" json:"icon"`
	Order       int       `gorm:"column:sort_order;default:0" json:"order"`
}

func (s *Skill) OrderCollection() ordering.Collection {
	return ordering.Collection{Model: &Skill{}, Filters: map[string]interface{}{"profile_id": s.ProfileID}}
}
func (s *Skill) GetOrder() int      { return s.Order }
func (s *Skill) SetOrder(order int) { s.Order = order }
func (s *Skill) AfterDelete(tx *gorm.DB) error {
	return ordering.Compact(tx, s.OrderCollection())
}
