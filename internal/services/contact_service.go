package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"portfolio_backend/internal/dto"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/pkg/apperrors"
)

// ContactThanks is returned to the visitor after a successful submission
const ContactThanks = "Thank you for your message. We will get back to you soon!"

type ContactService interface {
	Submit(ctx context.Context, db *gorm.DB, req dto.ContactRequest) (*models.ContactMessage, error)
	List(ctx context.Context, db *gorm.DB, status string) ([]models.ContactMessage, error)
	SetStatus(ctx context.Context, db *gorm.DB, id uint, status string) (*models.ContactMessage, error)
}

type contactService struct {
	contactRepo repositories.ContactRepository
}

func NewContactService(contactRepo repositories.ContactRepository) ContactService {
	return &contactService{contactRepo: contactRepo}
}

func (s *contactService) Submit(ctx context.Context, db *gorm.DB, req dto.ContactRequest) (*models.ContactMessage, error) {
	message := &models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
		Status:  models.ContactStatusNew,
	}
	if message.Name == "" || message.Subject == "" || message.Message == "" {
		return nil, apperrors.ErrInvalidInput("contact", "Name, subject and message must not be blank", nil)
	}

	if err := s.contactRepo.Create(db, message); err != nil {
		return nil, handleRepoError(err, "contact")
	}
	logger.CtxInfo(ctx, "contact message received", "id", message.ID, "subject", message.Subject)
	return message, nil
}

func (s *contactService) List(ctx context.Context, db *gorm.DB, status string) ([]models.ContactMessage, error) {
	if status != "" && !models.ContactMessageStatus(status).IsValid() {
		return nil, apperrors.ErrInvalidInput("contact", "Unknown status", map[string]string{"status": status})
	}
	messages, err := s.contactRepo.List(db, models.ContactMessageStatus(status))
	if err != nil {
		return nil, handleRepoError(err, "contact")
	}
	return messages, nil
}

func (s *contactService) SetStatus(ctx context.Context, db *gorm.DB, id uint, status string) (*models.ContactMessage, error) {
	if !models.ContactMessageStatus(status).IsValid() {
		return nil, apperrors.ErrInvalidInput("contact", "Unknown status", map[string]string{"status": status})
	}
	message, err := s.contactRepo.UpdateStatus(db, id, models.ContactMessageStatus(status))
	if err != nil {
		return nil, handleRepoError(err, "contact")
	}
	logger.CtxDebug(ctx, "contact message status changed", "id", id, "status", status)
	return message, nil
}
