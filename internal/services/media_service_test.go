package services_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_backend/internal/media"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/services"
	"portfolio_backend/internal/testutil"
	"portfolio_backend/pkg/apperrors"
)

func reloadProject(t *testing.T, f *fixture, id uint) *models.Project {
	t.Helper()
	var project models.Project
	require.NoError(t, f.db.First(&project, id).Error)
	return &project
}

func TestMediaService_UploadStoresManagedFile(t *testing.T) {
	f := newFixture(t)
	project := testutil.CreateProject(t, f.db, "Site", 0)

	err := f.media.Upload(f.ctx, f.db, models.OwnerProject, project.ID, "featured_image", &services.UploadedFile{
		Filename: "cover.png",
		Data:     pngBytes(t, 4, 3),
	})
	require.NoError(t, err)

	ref := reloadProject(t, f, project.ID).FeaturedImage
	assert.NotEmpty(t, ref.File)
	assert.Empty(t, ref.URL)
	assert.Empty(t, ref.Data)
	assert.Equal(t, "cover.png", ref.Filename)
	assert.Equal(t, "image/png", ref.Mime)
	assert.Equal(t, 1, f.store.Len())
}

func TestMediaService_SetURLReleasesFile(t *testing.T) {
	f := newFixture(t)
	project := testutil.CreateProject(t, f.db, "Site", 0)
	require.NoError(t, f.media.Upload(f.ctx, f.db, models.OwnerProject, project.ID, "featured_image",
		&services.UploadedFile{Filename: "cover.png", Data: pngBytes(t, 2, 2)}))
	handle := reloadProject(t, f, project.ID).FeaturedImage.File

	require.NoError(t, f.media.SetURL(f.ctx, f.db, models.OwnerProject, project.ID, "featured_image", "https://img.example.com/c.png"))

	ref := reloadProject(t, f, project.ID).FeaturedImage
	assert.Equal(t, "https://img.example.com/c.png", ref.URL)
	assert.Empty(t, ref.File)
	_, stillThere := f.store.Bytes(handle)
	assert.False(t, stillThere, "displaced file must be deleted")
}

func TestMediaService_ReplaceUploadReleasesPrevious(t *testing.T) {
	f := newFixture(t)
	project := testutil.CreateProject(t, f.db, "Site", 0)
	upload := func(name string) string {
		require.NoError(t, f.media.Upload(f.ctx, f.db, models.OwnerProject, project.ID, "featured_image",
			&services.UploadedFile{Filename: name, Data: pngBytes(t, 2, 2)}))
		return reloadProject(t, f, project.ID).FeaturedImage.File
	}

	first := upload("a.png")
	second := upload("b.png")

	assert.NotEqual(t, first, second)
	assert.Equal(t, 1, f.store.Len())
	_, ok := f.store.Bytes(second)
	assert.True(t, ok)
}

func TestMediaService_ClearReleasesFile(t *testing.T) {
	f := newFixture(t)
	project := testutil.CreateProject(t, f.db, "Site", 0)
	require.NoError(t, f.media.Upload(f.ctx, f.db, models.OwnerProject, project.ID, "featured_image",
		&services.UploadedFile{Filename: "cover.png", Data: pngBytes(t, 2, 2)}))

	require.NoError(t, f.media.Clear(f.ctx, f.db, models.OwnerProject, project.ID, "featured_image"))

	assert.True(t, reloadProject(t, f, project.ID).FeaturedImage.IsEmpty())
	assert.Zero(t, f.store.Len())
}

func TestMediaService_FailedReleaseRollsBack(t *testing.T) {
	f := newFixture(t)
	project := testutil.CreateProject(t, f.db, "Site", 0)
	require.NoError(t, f.media.Upload(f.ctx, f.db, models.OwnerProject, project.ID, "featured_image",
		&services.UploadedFile{Filename: "cover.png", Data: pngBytes(t, 2, 2)}))
	handle := reloadProject(t, f, project.ID).FeaturedImage.File

	f.store.FailDelete = errors.New("bucket is read-only")
	err := f.media.Clear(f.ctx, f.db, models.OwnerProject, project.ID, "featured_image")

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeStorageUnavailable))
	assert.Equal(t, handle, reloadProject(t, f, project.ID).FeaturedImage.File, "row keeps its file when the delete fails")
}

func TestMediaService_Validation(t *testing.T) {
	f := newFixture(t)
	project := testutil.CreateProject(t, f.db, "Site", 0)

	err := f.media.SetURL(f.ctx, f.db, models.OwnerProject, project.ID, "featured_image", "ftp://example.com/a.png")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	err = f.media.SetURL(f.ctx, f.db, models.OwnerProject, project.ID, "password", "https://example.com/a.png")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	err = f.media.SetURL(f.ctx, f.db, models.OwnerProject, 404, "featured_image", "https://example.com/a.png")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	err = f.media.Upload(f.ctx, f.db, models.OwnerProject, project.ID, "featured_image", &services.UploadedFile{Filename: "empty.png"})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	big := &services.UploadedFile{Filename: "big.png", Data: make([]byte, services.GetDefaultUploadConfig().MaxSize+1)}
	err = f.media.Upload(f.ctx, f.db, models.OwnerProject, project.ID, "featured_image", big)
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
	assert.Zero(t, f.store.Len())
}

func TestMediaService_BlobWithoutStorage(t *testing.T) {
	f := newBlobFixture(t)
	project := testutil.CreateProject(t, f.db, "Site", 0)
	data := pngBytes(t, 2, 2)

	require.NoError(t, f.media.Upload(f.ctx, f.db, models.OwnerProject, project.ID, "featured_image",
		&services.UploadedFile{Data: data, ContentType: "image/png"}))

	ref := reloadProject(t, f, project.ID).FeaturedImage
	assert.Equal(t, data, ref.Data)
	assert.Empty(t, ref.File)

	slot, _ := models.LookupSlot(models.OwnerProject, "featured_image")
	presented := f.media.Present(f.ctx, slot, project.ID, ref)
	require.NotNil(t, presented)
	assert.Equal(t, services.StreamPath(slot, project.ID), presented.URL)
	assert.False(t, presented.IsExternal)
}

func TestMediaService_OpenBlob(t *testing.T) {
	f := newBlobFixture(t)
	project := testutil.CreateProject(t, f.db, "Site", 0)
	require.NoError(t, f.db.Model(project).Updates(map[string]interface{}{
		"featured_image_data": []byte("legacy-bytes"),
		"featured_image_mime": "image/png",
	}).Error)

	payload, err := f.media.Open(f.ctx, f.db, models.OwnerProject, project.ID, "featured_image")
	require.NoError(t, err)
	defer payload.Body.Close()

	assert.Equal(t, media.KindBlob, payload.Kind)
	assert.Equal(t, "image/png", payload.MimeType)
	assert.Equal(t, fmt.Sprintf("project_%d.png", project.ID), payload.Filename)
	assert.Equal(t, int64(len("legacy-bytes")), payload.Size)
	body, err := io.ReadAll(payload.Body)
	require.NoError(t, err)
	assert.Equal(t, "legacy-bytes", string(body))
}

func TestMediaService_OpenExternalAndEmpty(t *testing.T) {
	f := newFixture(t)
	project := testutil.CreateProject(t, f.db, "Site", 0)

	_, err := f.media.Open(f.ctx, f.db, models.OwnerProject, project.ID, "featured_image")
	assert.ErrorIs(t, err, apperrors.ErrNoMedia)

	require.NoError(t, f.media.SetURL(f.ctx, f.db, models.OwnerProject, project.ID, "featured_image", "https://img.example.com/c.png"))
	payload, err := f.media.Open(f.ctx, f.db, models.OwnerProject, project.ID, "featured_image")
	require.NoError(t, err)
	assert.Equal(t, media.KindExternal, payload.Kind)
	assert.Equal(t, "https://img.example.com/c.png", payload.RedirectURL)
}

func TestMediaService_OpenMissingFile(t *testing.T) {
	f := newFixture(t)
	project := testutil.CreateProject(t, f.db, "Site", 0)
	require.NoError(t, f.media.Upload(f.ctx, f.db, models.OwnerProject, project.ID, "featured_image",
		&services.UploadedFile{Filename: "cover.png", Data: pngBytes(t, 2, 2)}))
	f.store.Remove(reloadProject(t, f, project.ID).FeaturedImage.File)

	_, err := f.media.Open(f.ctx, f.db, models.OwnerProject, project.ID, "featured_image")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}
