package services_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/services"
	"portfolio_backend/internal/storage"
	"portfolio_backend/internal/testutil"
)

type fixture struct {
	ctx         context.Context
	db          *gorm.DB
	store       *storage.MemoryStorage
	media       services.MediaService
	images      services.ImageService
	collections services.CollectionService
	singletons  services.SingletonService
	content     services.ContentService
	contact     services.ContactService
}

// newFixture wires the services over a fresh database and an in-memory backend
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := storage.NewMemoryStorage("https://cdn.test")
	f := build(t, store)
	f.store = store
	return f
}

// newBlobFixture has no storage backend: uploads land in the blob channel
func newBlobFixture(t *testing.T) *fixture {
	t.Helper()
	return build(t, nil)
}

func build(t *testing.T, store storage.Storage) *fixture {
	db := testutil.NewTestDB(t)
	testutil.SeedProfile(t, db)

	cfg := services.GetDefaultUploadConfig()
	contentRepo := repositories.NewContentRepository()
	mediaSvc := services.NewMediaService(repositories.NewMediaRepository(), store, cfg)
	imageSvc := services.NewImageService(repositories.NewImageRepository(), mediaSvc, store, cfg)
	singletonSvc := services.NewSingletonService(repositories.NewSingletonRepository(), contentRepo)

	return &fixture{
		ctx:         context.Background(),
		db:          db,
		media:       mediaSvc,
		images:      imageSvc,
		collections: services.NewCollectionService(repositories.NewCollectionRepository(), imageSvc, mediaSvc),
		singletons:  singletonSvc,
		content:     services.NewContentService(contentRepo, singletonSvc, imageSvc, mediaSvc),
		contact:     services.NewContactService(repositories.NewContactRepository()),
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func intPtr(v int) *int { return &v }
