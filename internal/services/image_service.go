package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"portfolio_backend/internal/dto"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/ordering"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/storage"
	"portfolio_backend/pkg/apperrors"
)

// AttachImageRequest carries exactly one of File and URL
type AttachImageRequest struct {
	OwnerType  string
	OwnerID    uint
	File       *UploadedFile
	URL        string
	ImageType  models.ImageType
	AltText    string
	Caption    string
	Order      *int
	ShowOnHome bool
}

type ImageService interface {
	Attach(ctx context.Context, db *gorm.DB, req AttachImageRequest) (*models.Image, error)
	ListFor(db *gorm.DB, ownerType string, ownerID uint) ([]models.Image, error)
	ListHome(db *gorm.DB) ([]models.Image, error)
	Get(db *gorm.DB, uuid string) (*models.Image, error)
	Reorder(db *gorm.DB, uuid string, order int) (*models.Image, error)
	Delete(ctx context.Context, db *gorm.DB, uuid string) error
	DeleteForOwner(ctx context.Context, tx *gorm.DB, ownerType string, ownerID uint) error

	Present(ctx context.Context, image *models.Image) dto.ImageResponse
	PresentAll(ctx context.Context, images []models.Image) []dto.ImageResponse
	Open(ctx context.Context, db *gorm.DB, uuid string) (*MediaPayload, error)
}

type imageService struct {
	imageRepo repositories.ImageRepository
	mediaSvc  MediaService
	storage   storage.Storage
	config    UploadConfig
}

func NewImageService(
	imageRepo repositories.ImageRepository,
	mediaSvc MediaService,
	storage storage.Storage,
	config UploadConfig,
) ImageService {
	return &imageService{
		imageRepo: imageRepo,
		mediaSvc:  mediaSvc,
		storage:   storage,
		config:    config,
	}
}

func (s *imageService) Attach(ctx context.Context, db *gorm.DB, req AttachImageRequest) (*models.Image, error) {
	req.URL = strings.TrimSpace(req.URL)
	hasFile := req.File != nil
	hasURL := req.URL != ""
	if hasFile == hasURL {
		return nil, apperrors.ErrInvalidInput("image", "Provide either an uploaded file or an external URL", map[string]string{
			"file": "exactly one of file and url is required",
			"url":  "exactly one of file and url is required",
		})
	}
	if hasURL {
		if err := validateExternalURL(req.URL); err != nil {
			return nil, err
		}
	}

	if req.ImageType == "" {
		req.ImageType = models.ImageTypeGallery
	}
	if !models.ValidImageType(req.ImageType) {
		return nil, apperrors.ErrInvalidInput("image", "Unknown image type", map[string]string{
			"image_type": string(req.ImageType),
		})
	}
	if err := s.checkOwner(db, req.OwnerType, req.OwnerID); err != nil {
		return nil, err
	}

	image := &models.Image{
		OwnerType:  req.OwnerType,
		OwnerID:    req.OwnerID,
		ImageType:  req.ImageType,
		AltText:    req.AltText,
		Caption:    req.Caption,
		ShowOnHome: req.ShowOnHome,
	}

	var stored *storedUpload
	if hasFile {
		var err error
		stored, err = storeUpload(ctx, s.storage, s.config, "images", req.File)
		if err != nil {
			return nil, err
		}
		stored.apply(&image.Image, req.File.Data)
		image.FileSize, image.Width, image.Height = stored.Size, stored.Width, stored.Height
	} else {
		image.Image.SetExternalURL(req.URL)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		position, err := ordering.PrepareInsert(tx, image.OrderCollection(), req.Order)
		if err != nil {
			return err
		}
		image.Order = position
		return s.imageRepo.Create(tx, image)
	})
	if err != nil {
		if stored != nil {
			discard(ctx, s.storage, stored.Handle)
		}
		return nil, handleRepoError(err, "image")
	}

	logger.CtxInfo(ctx, "image attached",
		"uuid", image.UUID, "owner_type", image.OwnerType, "owner_id", image.OwnerID, "order", image.Order)
	return image, nil
}

// checkOwner resolves the (type, id) pair at runtime; there is no foreign key
func (s *imageService) checkOwner(db *gorm.DB, ownerType string, ownerID uint) error {
	owner, ok := models.NewAttachable(ownerType)
	if !ok {
		return apperrors.ErrInvalidInput("image", "Unknown owner type", map[string]interface{}{
			"owner_type": ownerType,
			"allowed":    models.AttachableTypes(),
		})
	}
	var count int64
	if err := db.Model(owner).Where("id = ?", ownerID).Count(&count).Error; err != nil {
		return handleRepoError(err, "image")
	}
	if count == 0 {
		return apperrors.NotFound("image", fmt.Sprintf("%s %d does not exist", ownerType, ownerID))
	}
	return nil
}

func (s *imageService) ListFor(db *gorm.DB, ownerType string, ownerID uint) ([]models.Image, error) {
	images, err := s.imageRepo.ListByOwner(db, ownerType, ownerID)
	if err != nil {
		return nil, handleRepoError(err, "image")
	}
	return images, nil
}

func (s *imageService) ListHome(db *gorm.DB) ([]models.Image, error) {
	images, err := s.imageRepo.ListHome(db)
	if err != nil {
		return nil, handleRepoError(err, "image")
	}
	return images, nil
}

func (s *imageService) Get(db *gorm.DB, uuid string) (*models.Image, error) {
	image, err := s.imageRepo.FindByUUID(db, uuid)
	if err != nil {
		return nil, handleRepoError(err, "image")
	}
	return image, nil
}

func (s *imageService) Reorder(db *gorm.DB, uuid string, order int) (*models.Image, error) {
	var image *models.Image
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		image, err = s.imageRepo.FindByUUID(tx, uuid)
		if err != nil {
			return err
		}
		if err := ordering.Move(tx, image.OrderCollection(), image.ID, order); err != nil {
			return err
		}
		image, err = s.imageRepo.FindByID(tx, image.ID)
		return err
	})
	if err != nil {
		return nil, handleRepoError(err, "image")
	}
	return image, nil
}

// Delete is not idempotent: an unknown uuid is NotFound
func (s *imageService) Delete(ctx context.Context, db *gorm.DB, uuid string) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		image, err := s.imageRepo.FindByUUID(tx, uuid)
		if err != nil {
			return err
		}
		if err := s.imageRepo.Delete(tx, image); err != nil {
			return err
		}
		return release(ctx, s.storage, image.Image.File)
	})
	if err != nil {
		return handleRepoError(err, "image")
	}
	logger.CtxInfo(ctx, "image deleted", "uuid", uuid)
	return nil
}

// DeleteForOwner runs inside the owner's delete transaction
func (s *imageService) DeleteForOwner(ctx context.Context, tx *gorm.DB, ownerType string, ownerID uint) error {
	images, err := s.imageRepo.DeleteByOwner(tx, ownerType, ownerID)
	if err != nil {
		return handleRepoError(err, "image")
	}
	for _, image := range images {
		if err := release(ctx, s.storage, image.Image.File); err != nil {
			return err
		}
	}
	if len(images) > 0 {
		logger.CtxInfo(ctx, "owner images deleted", "owner_type", ownerType, "owner_id", ownerID, "count", len(images))
	}
	return nil
}

func (s *imageService) Present(ctx context.Context, image *models.Image) dto.ImageResponse {
	slot, _ := models.LookupSlot("image", "image")
	return dto.ImageResponse{
		UUID:       image.UUID,
		OwnerType:  image.OwnerType,
		OwnerID:    image.OwnerID,
		Image:      s.mediaSvc.Present(ctx, slot, image.ID, image.Image),
		Filename:   image.Image.Filename,
		MimeType:   image.Image.Mime,
		FileSize:   image.FileSize,
		Width:      image.Width,
		Height:     image.Height,
		ImageType:  string(image.ImageType),
		AltText:    image.AltText,
		Caption:    image.Caption,
		Order:      image.Order,
		ShowOnHome: image.ShowOnHome,
		CreatedAt:  image.CreatedAt,
	}
}

func (s *imageService) PresentAll(ctx context.Context, images []models.Image) []dto.ImageResponse {
	out := make([]dto.ImageResponse, 0, len(images))
	for i := range images {
		out = append(out, s.Present(ctx, &images[i]))
	}
	return out
}

func (s *imageService) Open(ctx context.Context, db *gorm.DB, uuid string) (*MediaPayload, error) {
	image, err := s.Get(db, uuid)
	if err != nil {
		return nil, err
	}
	payload, err := s.mediaSvc.OpenReference(ctx, image.Image, fmt.Sprintf("image_%d", image.ID))
	if errors.Is(err, apperrors.ErrNoMedia) {
		return nil, apperrors.NotFound("image", "Image has no stored media")
	}
	return payload, err
}
