package services

import (
	"bytes"
	"context"
	"fmt"

	"portfolio_backend/internal/imageprocessor"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/media"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/storage"
	"portfolio_backend/pkg/apperrors"
)

// UploadedFile is an upload already read into memory by the transport layer
type UploadedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UploadConfig bounds uploads
type UploadConfig struct {
	MaxSize     int64
	DefaultMime string
}

func GetDefaultUploadConfig() UploadConfig {
	return UploadConfig{
		MaxSize:     10 * 1024 * 1024,
		DefaultMime: "image/jpeg",
	}
}

// storedUpload is the outcome of writing one upload to a slot
type storedUpload struct {
	Handle   string
	Filename string
	Mime     string
	Size     int64
	Width    *int
	Height   *int
}

// storeUpload computes metadata and writes the bytes to the storage backend.
// Without a backend the caller falls back to the legacy blob channel (Handle "").
func storeUpload(ctx context.Context, store storage.Storage, cfg UploadConfig, dir string, file *UploadedFile) (*storedUpload, error) {
	if cfg.MaxSize > 0 && int64(len(file.Data)) > cfg.MaxSize {
		return nil, apperrors.ErrFileTooLarge
	}
	if len(file.Data) == 0 {
		return nil, apperrors.ErrInvalidInput("media", "Uploaded file is empty", map[string]string{
			"file": "empty upload",
		})
	}

	filename := file.Filename
	mime := media.DetectMime(file.ContentType, filename, cfg.DefaultMime)
	if filename == "" {
		filename = "upload" + media.ExtensionForMime(mime)
	}

	// Dimension decoding is best effort: non-images keep nil width/height
	width, height := imageprocessor.Dimensions(file.Data)

	result := &storedUpload{
		Filename: filename,
		Mime:     mime,
		Size:     int64(len(file.Data)),
		Width:    width,
		Height:   height,
	}
	if store == nil {
		return result, nil
	}

	handle, err := store.Save(ctx, storage.ObjectKey(dir, filename), bytes.NewReader(file.Data), mime)
	if err != nil {
		return nil, apperrors.ErrStorageUnavailable(fmt.Errorf("save %s: %w", filename, err))
	}
	result.Handle = handle
	return result, nil
}

// apply writes the stored upload into ref, returning the handle it displaced
func (u *storedUpload) apply(ref *models.MediaReference, data []byte) (released string) {
	if u.Handle != "" {
		return ref.SetFile(u.Handle, u.Filename, u.Mime)
	}
	return ref.SetBlob(data, u.Filename, u.Mime)
}

// discard removes an object saved for a write that did not commit
func discard(ctx context.Context, store storage.Storage, handle string) {
	if store == nil || handle == "" {
		return
	}
	if err := store.Delete(ctx, handle); err != nil {
		logger.CtxWarn(ctx, "failed to remove orphaned upload", "handle", handle, "error", err.Error())
	}
}

// release deletes a displaced managed file; failure aborts the surrounding transaction
func release(ctx context.Context, store storage.Storage, handle string) error {
	if store == nil || handle == "" {
		return nil
	}
	if err := store.Delete(ctx, handle); err != nil {
		return apperrors.ErrStorageUnavailable(fmt.Errorf("delete %s: %w", handle, err))
	}
	return nil
}
