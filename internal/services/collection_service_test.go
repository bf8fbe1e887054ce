package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_backend/internal/models"
	"portfolio_backend/internal/services"
	"portfolio_backend/pkg/apperrors"
)

func createProject(t *testing.T, f *fixture, title string, order *int) *models.Project {
	t.Helper()
	project := &models.Project{ProfileID: models.SingletonID, Title: title, IsVisible: true}
	require.NoError(t, f.collections.Create(f.ctx, f.db, project, order))
	return project
}

func projectTitles(t *testing.T, f *fixture) []string {
	t.Helper()
	var projects []models.Project
	require.NoError(t, f.db.Order("sort_order ASC").Find(&projects).Error)
	titles := make([]string, len(projects))
	for i, p := range projects {
		titles[i] = p.Title
	}
	return titles
}

func TestCollectionService_CreateAndMove(t *testing.T) {
	f := newFixture(t)
	createProject(t, f, "one", nil)
	createProject(t, f, "two", nil)
	three := createProject(t, f, "three", nil)

	member, err := f.collections.Move(f.ctx, f.db, "projects", three.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, member.GetOrder())
	assert.Equal(t, []string{"three", "one", "two"}, projectTitles(t, f))
}

func TestCollectionService_MoveValidation(t *testing.T) {
	f := newFixture(t)
	project := createProject(t, f, "one", nil)

	_, err := f.collections.Move(f.ctx, f.db, "users", project.ID, 0)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	_, err = f.collections.Move(f.ctx, f.db, "projects", project.ID, -1)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = f.collections.Move(f.ctx, f.db, "projects", 404, 0)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestCollectionService_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	keep := createProject(t, f, "keep", nil)
	doomed := createProject(t, f, "doomed", nil)
	require.Equal(t, []string{"keep", "doomed"}, projectTitles(t, f))

	require.NoError(t, f.media.Upload(f.ctx, f.db, models.OwnerProject, doomed.ID, "featured_image",
		&services.UploadedFile{Filename: "cover.png", Data: pngBytes(t, 2, 2)}))
	_, err := f.images.Attach(f.ctx, f.db, services.AttachImageRequest{
		OwnerType: models.OwnerProject,
		OwnerID:   doomed.ID,
		File:      &services.UploadedFile{Filename: "shot.png", Data: pngBytes(t, 2, 2)},
	})
	require.NoError(t, err)
	require.Equal(t, 2, f.store.Len())

	require.NoError(t, f.collections.Delete(f.ctx, f.db, "projects", doomed.ID))

	assert.Zero(t, f.store.Len(), "featured image and attachments are released")
	images, err := f.images.ListFor(f.db, models.OwnerProject, doomed.ID)
	require.NoError(t, err)
	assert.Empty(t, images)

	var remaining models.Project
	require.NoError(t, f.db.First(&remaining, keep.ID).Error)
	assert.Equal(t, 0, remaining.Order)
}

func TestCollectionService_Names(t *testing.T) {
	f := newFixture(t)
	assert.ElementsMatch(t, []string{
		"skills", "social-links", "projects", "certificates", "achievements",
		"testimonials", "blog-categories", "work-experience",
	}, f.collections.Names())
}
