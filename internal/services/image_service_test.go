package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_backend/internal/models"
	"portfolio_backend/internal/services"
	"portfolio_backend/internal/testutil"
	"portfolio_backend/pkg/apperrors"
)

func attachURL(t *testing.T, f *fixture, ownerType string, ownerID uint, order *int) *models.Image {
	t.Helper()
	image, err := f.images.Attach(f.ctx, f.db, services.AttachImageRequest{
		OwnerType: ownerType,
		OwnerID:   ownerID,
		URL:       "https://img.example.com/gallery.png",
		Order:     order,
	})
	require.NoError(t, err)
	return image
}

func TestImageService_AttachUpload(t *testing.T) {
	f := newFixture(t)
	project := testutil.CreateProject(t, f.db, "Site", 0)

	image, err := f.images.Attach(f.ctx, f.db, services.AttachImageRequest{
		OwnerType: models.OwnerProject,
		OwnerID:   project.ID,
		File:      &services.UploadedFile{Filename: "shot.png", Data: pngBytes(t, 5, 4)},
		AltText:   "Screenshot",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, image.UUID)
	assert.Equal(t, models.ImageTypeGallery, image.ImageType)
	assert.Equal(t, 0, image.Order)
	assert.NotEmpty(t, image.Image.File)
	require.NotNil(t, image.Width)
	require.NotNil(t, image.Height)
	assert.Equal(t, 5, *image.Width)
	assert.Equal(t, 4, *image.Height)
	assert.Equal(t, int64(len(pngBytes(t, 5, 4))), image.FileSize)

	presented := f.images.Present(f.ctx, image)
	require.NotNil(t, presented.Image)
	assert.Equal(t, "https://cdn.test/"+image.Image.File, presented.Image.URL)
}

func TestImageService_AttachNeedsExactlyOneSource(t *testing.T) {
	f := newFixture(t)
	project := testutil.CreateProject(t, f.db, "Site", 0)

	_, err := f.images.Attach(f.ctx, f.db, services.AttachImageRequest{
		OwnerType: models.OwnerProject,
		OwnerID:   project.ID,
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = f.images.Attach(f.ctx, f.db, services.AttachImageRequest{
		OwnerType: models.OwnerProject,
		OwnerID:   project.ID,
		URL:       "https://img.example.com/a.png",
		File:      &services.UploadedFile{Filename: "a.png", Data: pngBytes(t, 1, 1)},
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	assert.Zero(t, f.store.Len())
}

func TestImageService_AttachChecksOwner(t *testing.T) {
	f := newFixture(t)

	_, err := f.images.Attach(f.ctx, f.db, services.AttachImageRequest{
		OwnerType: "user", OwnerID: 1, URL: "https://img.example.com/a.png",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = f.images.Attach(f.ctx, f.db, services.AttachImageRequest{
		OwnerType: models.OwnerProject, OwnerID: 99, URL: "https://img.example.com/a.png",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	_, err = f.images.Attach(f.ctx, f.db, services.AttachImageRequest{
		OwnerType: models.OwnerProfile, OwnerID: models.SingletonID, URL: "https://img.example.com/a.png",
		ImageType: "banner",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestImageService_OrderAndReorder(t *testing.T) {
	f := newFixture(t)
	project := testutil.CreateProject(t, f.db, "Site", 0)

	a := attachURL(t, f, models.OwnerProject, project.ID, nil)
	b := attachURL(t, f, models.OwnerProject, project.ID, nil)
	c := attachURL(t, f, models.OwnerProject, project.ID, intPtr(1))
	assert.Equal(t, []int{0, 1, 1}, []int{a.Order, b.Order, c.Order})

	list, err := f.images.ListFor(f.db, models.OwnerProject, project.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{a.UUID, c.UUID, b.UUID}, []string{list[0].UUID, list[1].UUID, list[2].UUID})

	moved, err := f.images.Reorder(f.db, b.UUID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, moved.Order)

	list, err = f.images.ListFor(f.db, models.OwnerProject, project.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.UUID, a.UUID, c.UUID}, []string{list[0].UUID, list[1].UUID, list[2].UUID})
}

func TestImageService_UploadAtFrontThenDelete(t *testing.T) {
	f := newFixture(t)
	project := testutil.CreateProject(t, f.db, "Site", 0)

	first := attachURL(t, f, models.OwnerProject, project.ID, nil)
	assert.Equal(t, 0, first.Order)

	second, err := f.images.Attach(f.ctx, f.db, services.AttachImageRequest{
		OwnerType: models.OwnerProject,
		OwnerID:   project.ID,
		File:      &services.UploadedFile{Filename: "front.png", Data: pngBytes(t, 2, 2)},
		Order:     intPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Order)

	reloaded, err := f.images.Get(f.db, first.UUID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Order, "explicit zero shifts the existing image")

	require.NoError(t, f.images.Delete(f.ctx, f.db, second.UUID))

	reloaded, err = f.images.Get(f.db, first.UUID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Order)
}

func TestImageService_DeleteReleasesFileAndCompacts(t *testing.T) {
	f := newFixture(t)
	project := testutil.CreateProject(t, f.db, "Site", 0)

	first, err := f.images.Attach(f.ctx, f.db, services.AttachImageRequest{
		OwnerType: models.OwnerProject,
		OwnerID:   project.ID,
		File:      &services.UploadedFile{Filename: "a.png", Data: pngBytes(t, 1, 1)},
	})
	require.NoError(t, err)
	second := attachURL(t, f, models.OwnerProject, project.ID, nil)
	require.Equal(t, 1, f.store.Len())

	require.NoError(t, f.images.Delete(f.ctx, f.db, first.UUID))

	assert.Zero(t, f.store.Len())
	remaining, err := f.images.Get(f.db, second.UUID)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining.Order)

	err = f.images.Delete(f.ctx, f.db, first.UUID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound), "delete is not idempotent")
}

func TestImageService_ListHome(t *testing.T) {
	f := newFixture(t)
	_, err := f.images.Attach(f.ctx, f.db, services.AttachImageRequest{
		OwnerType:  models.OwnerProfile,
		OwnerID:    models.SingletonID,
		URL:        "https://img.example.com/hero.png",
		ShowOnHome: true,
	})
	require.NoError(t, err)
	attachURL(t, f, models.OwnerProfile, models.SingletonID, nil)

	home, err := f.images.ListHome(f.db)
	require.NoError(t, err)
	require.Len(t, home, 1)
	assert.True(t, home[0].ShowOnHome)
}

func TestImageService_OpenWithoutMedia(t *testing.T) {
	f := newFixture(t)
	image := attachURL(t, f, models.OwnerProfile, models.SingletonID, nil)
	require.NoError(t, f.media.Clear(f.ctx, f.db, "image", image.ID, "image"))

	_, err := f.images.Open(f.ctx, f.db, image.UUID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}
