package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"gorm.io/gorm"

	"portfolio_backend/internal/dto"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/media"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/storage"
	"portfolio_backend/pkg/apperrors"
)

// MediaService owns the write paths of every MediaReference slot. Setting a URL,
// uploading a file and clearing are separate operations; each leaves at most one
// channel populated and releases the managed file it displaces.
type MediaService interface {
	SetURL(ctx context.Context, db *gorm.DB, entity string, id uint, field, rawURL string) error
	Upload(ctx context.Context, db *gorm.DB, entity string, id uint, field string, file *UploadedFile) error
	Clear(ctx context.Context, db *gorm.DB, entity string, id uint, field string) error
	Release(ctx context.Context, handle string) error

	Resolve(ctx context.Context, ref models.MediaReference) (media.Resolved, error)
	Present(ctx context.Context, slot models.MediaSlot, id uint, ref models.MediaReference) *dto.Media
	Open(ctx context.Context, db *gorm.DB, entity string, id uint, field string) (*MediaPayload, error)
	OpenReference(ctx context.Context, ref models.MediaReference, fallbackName string) (*MediaPayload, error)
}

// MediaPayload is what the streaming endpoint writes. RedirectURL is set for
// external media; otherwise Body must be closed by the caller.
type MediaPayload struct {
	Kind        media.Kind
	RedirectURL string
	Body        io.ReadCloser
	MimeType    string
	Filename    string
	Size        int64
}

type mediaService struct {
	mediaRepo repositories.MediaRepository
	storage   storage.Storage
	config    UploadConfig
}

func NewMediaService(mediaRepo repositories.MediaRepository, storage storage.Storage, config UploadConfig) MediaService {
	return &mediaService{
		mediaRepo: mediaRepo,
		storage:   storage,
		config:    config,
	}
}

func (s *mediaService) lookup(entity, field string) (models.MediaSlot, error) {
	slot, ok := models.LookupSlot(entity, field)
	if !ok {
		return models.MediaSlot{}, apperrors.NotFound("media", fmt.Sprintf("Unknown media field %s/%s", entity, field))
	}
	return slot, nil
}

func (s *mediaService) SetURL(ctx context.Context, db *gorm.DB, entity string, id uint, field, rawURL string) error {
	slot, err := s.lookup(entity, field)
	if err != nil {
		return err
	}
	if err := validateExternalURL(rawURL); err != nil {
		return err
	}

	return s.mutate(ctx, db, slot, id, func(row interface{}, ref *models.MediaReference) (string, map[string]interface{}) {
		released := ref.SetExternalURL(rawURL)
		return released, imageMetadata(row, 0, nil, nil)
	})
}

func (s *mediaService) Upload(ctx context.Context, db *gorm.DB, entity string, id uint, field string, file *UploadedFile) error {
	slot, err := s.lookup(entity, field)
	if err != nil {
		return err
	}
	if file == nil {
		return apperrors.ErrInvalidInput("media", "No file uploaded", map[string]string{"file": "required"})
	}

	stored, err := storeUpload(ctx, s.storage, s.config, slot.Dir, file)
	if err != nil {
		return err
	}

	err = s.mutate(ctx, db, slot, id, func(row interface{}, ref *models.MediaReference) (string, map[string]interface{}) {
		released := stored.apply(ref, file.Data)
		return released, imageMetadata(row, stored.Size, stored.Width, stored.Height)
	})
	if err != nil {
		discard(ctx, s.storage, stored.Handle)
		return err
	}
	return nil
}

func (s *mediaService) Clear(ctx context.Context, db *gorm.DB, entity string, id uint, field string) error {
	slot, err := s.lookup(entity, field)
	if err != nil {
		return err
	}
	return s.mutate(ctx, db, slot, id, func(row interface{}, ref *models.MediaReference) (string, map[string]interface{}) {
		return ref.Clear(), imageMetadata(row, 0, nil, nil)
	})
}

// Release deletes a managed file whose row is going away
func (s *mediaService) Release(ctx context.Context, handle string) error {
	return release(ctx, s.storage, handle)
}

// mutate loads the row, applies change, persists the slot and releases the
// displaced file, all in one transaction. A storage failure rolls the write back.
func (s *mediaService) mutate(
	ctx context.Context,
	db *gorm.DB,
	slot models.MediaSlot,
	id uint,
	change func(row interface{}, ref *models.MediaReference) (string, map[string]interface{}),
) error {
	return db.Transaction(func(tx *gorm.DB) error {
		row, err := s.mediaRepo.LoadRow(tx, slot, id)
		if err != nil {
			return handleRepoError(err, slot.Entity)
		}

		released, extra := change(row, slot.Ref(row))
		if err := s.mediaRepo.SaveSlot(tx, slot, row, extra); err != nil {
			return handleRepoError(err, slot.Entity)
		}
		if err := release(ctx, s.storage, released); err != nil {
			return err
		}

		logger.CtxInfo(ctx, "media slot updated",
			"entity", slot.Entity, "id", id, "field", slot.Field, "released", released)
		return nil
	})
}

func (s *mediaService) Resolve(ctx context.Context, ref models.MediaReference) (media.Resolved, error) {
	var urls media.URLResolver
	if s.storage != nil {
		urls = s.storage
	}
	return media.Resolve(ctx, ref, urls)
}

// Present serializes a slot for the read API; nil for an empty slot. A storage
// error degrades to "no media" and is logged.
func (s *mediaService) Present(ctx context.Context, slot models.MediaSlot, id uint, ref models.MediaReference) *dto.Media {
	resolved, err := s.Resolve(ctx, ref)
	if err != nil {
		logger.CtxWarn(ctx, "failed to resolve media", "entity", slot.Entity, "id", id, "field", slot.Field, "error", err.Error())
		return nil
	}
	return dto.NewMedia(resolved, StreamPath(slot, id))
}

func (s *mediaService) Open(ctx context.Context, db *gorm.DB, entity string, id uint, field string) (*MediaPayload, error) {
	slot, err := s.lookup(entity, field)
	if err != nil {
		return nil, err
	}
	row, err := s.mediaRepo.LoadRow(db, slot, id)
	if err != nil {
		return nil, handleRepoError(err, slot.Entity)
	}
	return s.OpenReference(ctx, *slot.Ref(row), fmt.Sprintf("%s_%d", slot.Fallback, id))
}

func (s *mediaService) OpenReference(ctx context.Context, ref models.MediaReference, fallbackName string) (*MediaPayload, error) {
	resolved, err := s.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	filename := resolved.Filename
	switch resolved.Kind {
	case media.KindNone:
		return nil, apperrors.ErrNoMedia

	case media.KindExternal:
		return &MediaPayload{Kind: resolved.Kind, RedirectURL: resolved.URL, MimeType: resolved.MimeType}, nil

	case media.KindFile:
		body, err := s.storage.Open(ctx, resolved.Handle)
		if err != nil {
			if errors.Is(err, storage.ErrObjectNotFound) {
				return nil, apperrors.NotFound("media", "Stored file is missing")
			}
			return nil, apperrors.ErrStorageUnavailable(err)
		}
		if filename == "" {
			filename = path.Base(resolved.Handle)
		}
		mime := resolved.MimeType
		if mime == "" {
			mime = media.MimeFromFilename(filename)
		}
		if mime == "" {
			mime = media.DefaultMime
		}
		return &MediaPayload{Kind: resolved.Kind, Body: body, MimeType: mime, Filename: filename, Size: -1}, nil

	default:
		if filename == "" {
			filename = fallbackName + media.ExtensionForMime(resolved.MimeType)
		}
		return &MediaPayload{
			Kind:     resolved.Kind,
			Body:     io.NopCloser(bytes.NewReader(resolved.Data)),
			MimeType: resolved.MimeType,
			Filename: filename,
			Size:     int64(len(resolved.Data)),
		}, nil
	}
}

// StreamPath is the streaming endpoint URL of a slot
func StreamPath(slot models.MediaSlot, id uint) string {
	return fmt.Sprintf("/media/%s/%d/%s", slot.Entity, id, slot.Field)
}

// imageMetadata keeps images.file_size/width/height in step with the slot
func imageMetadata(row interface{}, size int64, width, height *int) map[string]interface{} {
	img, ok := row.(*models.Image)
	if !ok {
		return nil
	}
	img.FileSize, img.Width, img.Height = size, width, height
	return map[string]interface{}{
		"file_size": size,
		"width":     width,
		"height":    height,
	}
}

func validateExternalURL(rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if rawURL == "" || err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperrors.ErrInvalidInput("media", "A valid http(s) URL is required", map[string]string{
			"url": rawURL,
		})
	}
	return nil
}
