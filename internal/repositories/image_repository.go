package repositories

import (
	"gorm.io/gorm"

	"portfolio_backend/internal/models"
)

type ImageRepository interface {
	Create(db *gorm.DB, image *models.Image) error
	FindByUUID(db *gorm.DB, uuid string) (*models.Image, error)
	FindByID(db *gorm.DB, id uint) (*models.Image, error)
	ListByOwner(db *gorm.DB, ownerType string, ownerID uint) ([]models.Image, error)
	ListHome(db *gorm.DB) ([]models.Image, error)
	Delete(db *gorm.DB, image *models.Image) error
	DeleteByOwner(db *gorm.DB, ownerType string, ownerID uint) ([]models.Image, error)
}

type ImageRepositoryImpl struct{}

func NewImageRepository() ImageRepository {
	return &ImageRepositoryImpl{}
}

func (r *ImageRepositoryImpl) Create(db *gorm.DB, image *models.Image) error {
	return db.Create(image).Error
}

func (r *ImageRepositoryImpl) FindByUUID(db *gorm.DB, uuid string) (*models.Image, error) {
	var image models.Image
	if err := db.Where("uuid = ?", uuid).First(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *ImageRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Image, error) {
	var image models.Image
	if err := db.First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// ListByOwner returns the owner's images in display order: sort_order, newest first
func (r *ImageRepositoryImpl) ListByOwner(db *gorm.DB, ownerType string, ownerID uint) ([]models.Image, error) {
	var images []models.Image
	err := db.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Order("sort_order ASC").Order("created_at DESC").Order("id DESC").
		Find(&images).Error
	return images, err
}

func (r *ImageRepositoryImpl) ListHome(db *gorm.DB) ([]models.Image, error) {
	var images []models.Image
	err := db.Where("show_on_home = ?", true).
		Order("sort_order ASC").Order("created_at DESC").Order("id DESC").
		Find(&images).Error
	return images, err
}

// Delete removes a loaded row; the AfterDelete hook compacts the siblings
func (r *ImageRepositoryImpl) Delete(db *gorm.DB, image *models.Image) error {
	return db.Delete(image).Error
}

// DeleteByOwner drops the whole collection and returns the removed rows so the
// caller can release their files
func (r *ImageRepositoryImpl) DeleteByOwner(db *gorm.DB, ownerType string, ownerID uint) ([]models.Image, error) {
	images, err := r.ListByOwner(db, ownerType, ownerID)
	if err != nil || len(images) == 0 {
		return images, err
	}
	err = db.Session(&gorm.Session{SkipHooks: true}).
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Delete(&models.Image{}).Error
	return images, err
}
