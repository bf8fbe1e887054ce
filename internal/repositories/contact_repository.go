package repositories

import (
	"time"

	"gorm.io/gorm"

	"portfolio_backend/internal/models"
)

type ContactRepository interface {
	Create(db *gorm.DB, message *models.ContactMessage) error
	List(db *gorm.DB, status models.ContactMessageStatus) ([]models.ContactMessage, error)
	UpdateStatus(db *gorm.DB, id uint, status models.ContactMessageStatus) (*models.ContactMessage, error)
}

type ContactRepositoryImpl struct{}

func NewContactRepository() ContactRepository {
	return &ContactRepositoryImpl{}
}

func (r *ContactRepositoryImpl) Create(db *gorm.DB, message *models.ContactMessage) error {
	return db.Create(message).Error
}

// List returns messages newest first; an empty status lists all of them
func (r *ContactRepositoryImpl) List(db *gorm.DB, status models.ContactMessageStatus) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	q := db.Order("created_at DESC").Order("id DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&messages).Error
	return messages, err
}

// UpdateStatus stamps replied_at the first time a message is marked replied
func (r *ContactRepositoryImpl) UpdateStatus(db *gorm.DB, id uint, status models.ContactMessageStatus) (*models.ContactMessage, error) {
	var message models.ContactMessage
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&message, id).Error; err != nil {
			return err
		}
		message.Status = status
		if status == models.ContactStatusReplied && message.RepliedAt == nil {
			now := time.Now()
			message.RepliedAt = &now
		}
		return tx.Model(&message).Select("status", "replied_at").Updates(&message).Error
	})
	if err != nil {
		return nil, err
	}
	return &message, nil
}
