package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"portfolio_backend/pkg/apperrors"
)

// SiteConfiguration is a singleton (id 1) holding frontend theme and route settings
type SiteConfiguration struct {
	BaseModel
	SiteName        string `gorm:"size:200" json:"site_name"`
	SiteDescription string `gorm:"type:text" json:"site_description"`
	BaseURL         string `gorm:"size:300" json:"base_url"`

	Theme           string `gorm:"size:20" json:"theme"`
	NeutralColor    string `gorm:"size:20" json:"neutral_color"`
	BrandColor      string `gorm:"size:20" json:"brand_color"`
	AccentColor     string `gorm:"size:20" json:"accent_color"`
	SolidStyle      string `gorm:"size:20" json:"solid_style"`
	BorderStyle     string `gorm:"size:20" json:"border_style"`
	SurfaceStyle    string `gorm:"size:20" json:"surface_style"`
	TransitionStyle string `gorm:"size:20" json:"transition_style"`
	Scaling         int    `json:"scaling"`

	DisplayLocation      bool `json:"display_location"`
	DisplayTime          bool `json:"display_time"`
	DisplayThemeSwitcher bool `json:"display_theme_switcher"`

	EnableSocialSharing bool `json:"enable_social_sharing"`
	ShareOnX            bool `json:"share_on_x"`
	ShareOnLinkedIn     bool `json:"share_on_linkedin"`
	ShareEmail          bool `json:"share_email"`
	ShareCopyLink       bool `json:"share_copy_link"`

	EnableRouteHome    bool `json:"enable_route_home"`
	EnableRouteAbout   bool `json:"enable_route_about"`
	EnableRouteWork    bool `json:"enable_route_work"`
	EnableRouteBlog    bool `json:"enable_route_blog"`
	EnableRouteGallery bool `json:"enable_route_gallery"`

	// ProtectedRoutes is a JSON array of frontend paths behind a password
	ProtectedRoutes datatypes.JSON `json:"protected_routes"`
}

func (SiteConfiguration) TableName() string {
	return "site_configurations"
}

func (s *SiteConfiguration) BeforeDelete(tx *gorm.DB) error {
	return apperrors.ErrSingletonDelete
}

// DefaultSiteConfiguration is the row created by get-or-create
func DefaultSiteConfiguration() *SiteConfiguration {
	return &SiteConfiguration{
		BaseModel:            BaseModel{ID: SingletonID},
		SiteName:             "Magic Portfolio",
		SiteDescription:      "A portfolio website",
		Theme:                "system",
		NeutralColor:         "gray",
		BrandColor:           "cyan",
		AccentColor:          "red",
		SolidStyle:           "flat",
		BorderStyle:          "playful",
		SurfaceStyle:         "translucent",
		TransitionStyle:      "all",
		Scaling:              100,
		DisplayLocation:      true,
		DisplayTime:          true,
		DisplayThemeSwitcher: true,
		EnableSocialSharing:  true,
		ShareOnX:             true,
		ShareOnLinkedIn:      true,
		ShareEmail:           true,
		ShareCopyLink:        true,
		EnableRouteHome:      true,
		EnableRouteAbout:     true,
		EnableRouteWork:      true,
		EnableRouteBlog:      true,
		EnableRouteGallery:   true,
		ProtectedRoutes:      datatypes.JSON(`[]`),
	}
}

// DefaultProfile is the row created by get-or-create
func DefaultProfile() *Profile {
	return &Profile{
		BaseModel:        BaseModel{ID: SingletonID},
		AvailableForHire: true,
	}
}
