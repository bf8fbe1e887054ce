package services

import (
	"context"

	"gorm.io/gorm"

	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"
)

// SingletonService exposes the Profile and SiteConfiguration rows. Reads never
// fail on an empty table: a default row is created first.
type SingletonService interface {
	GetProfile(ctx context.Context, db *gorm.DB) (*models.Profile, error)
	CreateProfile(ctx context.Context, db *gorm.DB, profile *models.Profile) error
	UpdateProfile(ctx context.Context, db *gorm.DB, profile *models.Profile) error
	DeleteProfile(ctx context.Context, db *gorm.DB) error

	GetSiteConfiguration(ctx context.Context, db *gorm.DB) (*models.SiteConfiguration, error)
	CreateSiteConfiguration(ctx context.Context, db *gorm.DB, cfg *models.SiteConfiguration) error
	UpdateSiteConfiguration(ctx context.Context, db *gorm.DB, cfg *models.SiteConfiguration) error
	DeleteSiteConfiguration(ctx context.Context, db *gorm.DB) error
}

type singletonService struct {
	singletonRepo repositories.SingletonRepository
	contentRepo   repositories.ContentRepository
}

func NewSingletonService(singletonRepo repositories.SingletonRepository, contentRepo repositories.ContentRepository) SingletonService {
	return &singletonService{
		singletonRepo: singletonRepo,
		contentRepo:   contentRepo,
	}
}

func (s *singletonService) GetProfile(ctx context.Context, db *gorm.DB) (*models.Profile, error) {
	profile, err := s.singletonRepo.GetOrCreateProfile(db)
	if err != nil {
		return nil, handleRepoError(err, "profile")
	}

	if profile.SocialLinks, err = s.contentRepo.ListSocialLinks(db); err != nil {
		return nil, handleRepoError(err, "profile")
	}
	if profile.Skills, err = s.contentRepo.ListSkills(db); err != nil {
		return nil, handleRepoError(err, "profile")
	}
	return profile, nil
}

func (s *singletonService) CreateProfile(ctx context.Context, db *gorm.DB, profile *models.Profile) error {
	if err := s.singletonRepo.CreateProfile(db, profile); err != nil {
		logger.CtxWarn(ctx, "profile create rejected", "error", err.Error())
		return handleRepoError(err, "profile")
	}
	return nil
}

func (s *singletonService) UpdateProfile(ctx context.Context, db *gorm.DB, profile *models.Profile) error {
	return handleRepoError(s.singletonRepo.UpdateProfile(db, profile), "profile")
}

func (s *singletonService) DeleteProfile(ctx context.Context, db *gorm.DB) error {
	err := s.singletonRepo.Delete(db, &models.Profile{BaseModel: models.BaseModel{ID: models.SingletonID}})
	return handleRepoError(err, "profile")
}

func (s *singletonService) GetSiteConfiguration(ctx context.Context, db *gorm.DB) (*models.SiteConfiguration, error) {
	cfg, err := s.singletonRepo.GetOrCreateSiteConfiguration(db)
	if err != nil {
		return nil, handleRepoError(err, "site_configuration")
	}
	return cfg, nil
}

func (s *singletonService) CreateSiteConfiguration(ctx context.Context, db *gorm.DB, cfg *models.SiteConfiguration) error {
	if err := s.singletonRepo.CreateSiteConfiguration(db, cfg); err != nil {
		logger.CtxWarn(ctx, "site configuration create rejected", "error", err.Error())
		return handleRepoError(err, "site_configuration")
	}
	return nil
}

func (s *singletonService) UpdateSiteConfiguration(ctx context.Context, db *gorm.DB, cfg *models.SiteConfiguration) error {
	return handleRepoError(s.singletonRepo.UpdateSiteConfiguration(db, cfg), "site_configuration")
}

func (s *singletonService) DeleteSiteConfiguration(ctx context.Context, db *gorm.DB) error {
	err := s.singletonRepo.Delete(db, &models.SiteConfiguration{BaseModel: models.BaseModel{ID: models.SingletonID}})
	return handleRepoError(err, "site_configuration")
}
