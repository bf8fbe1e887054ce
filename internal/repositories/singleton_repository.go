package repositories

import (
	"errors"

	"gorm.io/gorm"

	"portfolio_backend/internal/models"
	"portfolio_backend/pkg/apperrors"
)

// SingletonRepository enforces the one-row rule of Profile and SiteConfiguration
type SingletonRepository interface {
	CreateProfile(db *gorm.DB, profile *models.Profile) error
	GetOrCreateProfile(db *gorm.DB) (*models.Profile, error)
	UpdateProfile(db *gorm.DB, profile *models.Profile) error

	CreateSiteConfiguration(db *gorm.DB, cfg *models.SiteConfiguration) error
	GetOrCreateSiteConfiguration(db *gorm.DB) (*models.SiteConfiguration, error)
	UpdateSiteConfiguration(db *gorm.DB, cfg *models.SiteConfiguration) error

	Count(db *gorm.DB, model interface{}) (int64, error)
	Delete(db *gorm.DB, row interface{}) error
}

type SingletonRepositoryImpl struct{}

func NewSingletonRepository() SingletonRepository {
	return &SingletonRepositoryImpl{}
}

func (r *SingletonRepositoryImpl) CreateProfile(db *gorm.DB, profile *models.Profile) error {
	profile.ID = models.SingletonID
	return createSingleton(db, &models.Profile{}, profile)
}

func (r *SingletonRepositoryImpl) GetOrCreateProfile(db *gorm.DB) (*models.Profile, error) {
	var profile models.Profile
	if err := getOrCreate(db, &profile, models.DefaultProfile()); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *SingletonRepositoryImpl) UpdateProfile(db *gorm.DB, profile *models.Profile) error {
	profile.ID = models.SingletonID
	return db.Omit("SocialLinks", "Skills").Save(profile).Error
}

func (r *SingletonRepositoryImpl) CreateSiteConfiguration(db *gorm.DB, cfg *models.SiteConfiguration) error {
	cfg.ID = models.SingletonID
	return createSingleton(db, &models.SiteConfiguration{}, cfg)
}

func (r *SingletonRepositoryImpl) GetOrCreateSiteConfiguration(db *gorm.DB) (*models.SiteConfiguration, error) {
	var cfg models.SiteConfiguration
	if err := getOrCreate(db, &cfg, models.DefaultSiteConfiguration()); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *SingletonRepositoryImpl) UpdateSiteConfiguration(db *gorm.DB, cfg *models.SiteConfiguration) error {
	cfg.ID = models.SingletonID
	return db.Save(cfg).Error
}

func (r *SingletonRepositoryImpl) Count(db *gorm.DB, model interface{}) (int64, error) {
	var count int64
	err := db.Model(model).Count(&count).Error
	return count, err
}

// Delete always fails through the models' BeforeDelete hooks
func (r *SingletonRepositoryImpl) Delete(db *gorm.DB, row interface{}) error {
	return db.Delete(row).Error
}

// createSingleton rejects a second row. The fixed primary key makes a racing
// insert fail on the database as well.
func createSingleton(db *gorm.DB, model interface{}, row interface{}) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(model).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperrors.ErrSingletonExists
		}
		if err := tx.Create(row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrSingletonExists
			}
			return err
		}
		return nil
	})
}

// getOrCreate loads row 1 into dest, inserting defaults first when the table is empty
func getOrCreate(db *gorm.DB, dest interface{}, defaults interface{}) error {
	err := db.First(dest, models.SingletonID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := db.Create(defaults).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	return db.First(dest, models.SingletonID).Error
}
