package migration_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"portfolio_backend/internal/migration"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/storage"
	"portfolio_backend/internal/testutil"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func projectsOnly() []string { return []string{models.OwnerProject} }

func createBlobProject(t *testing.T, db *gorm.DB, title string, ref models.MediaReference) *models.Project {
	t.Helper()
	project := &models.Project{ProfileID: models.SingletonID, Title: title, IsVisible: true, FeaturedImage: ref}
	require.NoError(t, db.Create(project).Error)
	return project
}

func reload(t *testing.T, db *gorm.DB, id uint) models.Project {
	t.Helper()
	var project models.Project
	require.NoError(t, db.First(&project, id).Error)
	return project
}

func TestPromoter_CopiesBlobsAndKeepsThem(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := storage.NewMemoryStorage("")
	named := createBlobProject(t, db, "Named", models.MediaReference{Data: []byte("jpeg-bytes"), Mime: "image/jpeg", Filename: "cover.jpg"})
	anonymous := createBlobProject(t, db, "Anonymous", models.MediaReference{Data: pngHeader})
	createBlobProject(t, db, "External", models.MediaReference{URL: "https://img.example.com/x.png"})

	report, err := migration.NewPromoter(db, store).Run(context.Background(), migration.PromoteOptions{Entities: projectsOnly()})
	require.NoError(t, err)
	require.Len(t, report.Slots, 1)
	assert.Equal(t, "project.featured_image", report.Slots[0].Slot)
	assert.Equal(t, 3, report.Slots[0].Total)
	assert.Equal(t, 2, report.Migrated())
	assert.Equal(t, 1, report.Skipped())
	assert.Zero(t, report.Failed())
	assert.Equal(t, 2, store.Len())

	row := reload(t, db, named.ID)
	require.NotEmpty(t, row.FeaturedImage.File)
	assert.True(t, strings.HasPrefix(row.FeaturedImage.File, "projects/"))
	assert.True(t, strings.HasSuffix(row.FeaturedImage.File, "_cover.jpg"))
	assert.Equal(t, []byte("jpeg-bytes"), row.FeaturedImage.Data, "blob stays until cleared")
	stored, ok := store.Bytes(row.FeaturedImage.File)
	require.True(t, ok)
	assert.Equal(t, []byte("jpeg-bytes"), stored)

	row = reload(t, db, anonymous.ID)
	assert.Equal(t, "image/png", row.FeaturedImage.Mime)
	assert.Equal(t, fmt.Sprintf("project_%d.png", anonymous.ID), row.FeaturedImage.Filename)

	again, err := migration.NewPromoter(db, store).Run(context.Background(), migration.PromoteOptions{Entities: projectsOnly()})
	require.NoError(t, err)
	assert.Zero(t, again.Migrated(), "a second run finds nothing to copy")
	assert.Equal(t, 2, store.Len())
}

func TestPromoter_DryRunWritesNothing(t *testing.T) {
	db := testutil.NewTestDB(t)
	project := createBlobProject(t, db, "Dry", models.MediaReference{Data: []byte("x"), Mime: "image/gif"})

	report, err := migration.NewPromoter(db, nil).Run(context.Background(), migration.PromoteOptions{DryRun: true, Entities: projectsOnly()})
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, 1, report.Migrated())
	assert.Empty(t, reload(t, db, project.ID).FeaturedImage.File)
}

func TestPromoter_RequiresStorage(t *testing.T) {
	db := testutil.NewTestDB(t)
	_, err := migration.NewPromoter(db, nil).Run(context.Background(), migration.PromoteOptions{})
	assert.Error(t, err)
}

func TestPromoter_SaveFailureIsCounted(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := storage.NewMemoryStorage("")
	store.FailSave = errors.New("bucket offline")
	project := createBlobProject(t, db, "Offline", models.MediaReference{Data: []byte("x")})

	report, err := migration.NewPromoter(db, store).Run(context.Background(), migration.PromoteOptions{Entities: projectsOnly()})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed())
	assert.Empty(t, reload(t, db, project.ID).FeaturedImage.File)
}

func TestPromoter_BatchesWalkEveryRow(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := storage.NewMemoryStorage("")
	for _, title := range []string{"One", "Two", "Three", "Four", "Five"} {
		createBlobProject(t, db, title, models.MediaReference{Data: []byte(title), Mime: "text/plain"})
	}

	report, err := migration.NewPromoter(db, store).Run(context.Background(), migration.PromoteOptions{BatchSize: 2, Entities: projectsOnly()})
	require.NoError(t, err)
	assert.Equal(t, 5, report.Migrated())
}

func TestFallbackFilename(t *testing.T) {
	slot, ok := models.LookupSlot(models.OwnerBlogPost, "og_image")
	require.True(t, ok)
	assert.Equal(t, "blog_og_7.png", migration.FallbackFilename(slot, 7, "image/png"))

	slot, ok = models.LookupSlot(models.OwnerProfile, "resume")
	require.True(t, ok)
	assert.Equal(t, "resume_1.pdf", migration.FallbackFilename(slot, 1, "application/pdf"))
}

func promoted(t *testing.T, db *gorm.DB, store *storage.MemoryStorage, titles ...string) []*models.Project {
	t.Helper()
	var out []*models.Project
	for _, title := range titles {
		out = append(out, createBlobProject(t, db, title, models.MediaReference{Data: []byte(title), Mime: "text/plain"}))
	}
	_, err := migration.NewPromoter(db, store).Run(context.Background(), migration.PromoteOptions{Entities: projectsOnly()})
	require.NoError(t, err)
	return out
}

func TestDemoter_WithoutConfirmOnlyCounts(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := storage.NewMemoryStorage("")
	projects := promoted(t, db, store, "Alpha", "Beta")
	createBlobProject(t, db, "Legacy", models.MediaReference{Data: []byte("legacy")})

	report, err := migration.NewDemoter(db, store).Run(context.Background(), migration.DemoteOptions{Entities: projectsOnly()})
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, 2, report.Candidates())
	assert.Zero(t, report.Cleared())
	assert.NotEmpty(t, reload(t, db, projects[0].ID).FeaturedImage.Data)
}

func TestDemoter_ClearsToNull(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := storage.NewMemoryStorage("")
	projects := promoted(t, db, store, "Alpha", "Beta")
	legacy := createBlobProject(t, db, "Legacy", models.MediaReference{Data: []byte("legacy")})

	report, err := migration.NewDemoter(db, store).Run(context.Background(), migration.DemoteOptions{Confirm: true, Entities: projectsOnly()})
	require.NoError(t, err)
	assert.False(t, report.DryRun)
	assert.Equal(t, 2, report.Cleared())

	var nulls int64
	require.NoError(t, db.Model(&models.Project{}).Where("featured_image_data IS NULL").Count(&nulls).Error)
	assert.Equal(t, int64(2), nulls)

	row := reload(t, db, projects[1].ID)
	assert.Nil(t, row.FeaturedImage.Data)
	assert.NotEmpty(t, row.FeaturedImage.File, "the managed file is kept")
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, []byte("legacy"), reload(t, db, legacy.ID).FeaturedImage.Data, "rows without a file keep their blob")

	again, err := migration.NewDemoter(db, store).Run(context.Background(), migration.DemoteOptions{Confirm: true, Entities: projectsOnly()})
	require.NoError(t, err)
	assert.Zero(t, again.Candidates())
}

func TestDemoter_VerifySkipsMissingFiles(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := storage.NewMemoryStorage("")
	projects := promoted(t, db, store, "Kept", "Lost")
	store.Remove(reload(t, db, projects[1].ID).FeaturedImage.File)

	report, err := migration.NewDemoter(db, store).Run(context.Background(), migration.DemoteOptions{Confirm: true, Verify: true, Entities: projectsOnly()})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Cleared())
	assert.Equal(t, 1, report.Skipped())
	assert.Nil(t, reload(t, db, projects[0].ID).FeaturedImage.Data)
	assert.Equal(t, []byte("Lost"), reload(t, db, projects[1].ID).FeaturedImage.Data)
}

func TestDemoter_VerifyErrorsCountAsMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := storage.NewMemoryStorage("")
	promoted(t, db, store, "Only")
	store.FailExists = errors.New("timeout")

	report, err := migration.NewDemoter(db, store).Run(context.Background(), migration.DemoteOptions{Confirm: true, Verify: true, Entities: projectsOnly()})
	require.NoError(t, err)
	assert.Zero(t, report.Cleared())
	assert.Equal(t, 1, report.Skipped())
}

func TestDemoter_VerifyRequiresStorage(t *testing.T) {
	db := testutil.NewTestDB(t)
	_, err := migration.NewDemoter(db, nil).Run(context.Background(), migration.DemoteOptions{Verify: true})
	assert.Error(t, err)
}

func TestPromoter_BrokenSlotDoesNotStopTheRun(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := storage.NewMemoryStorage("")
	project := createBlobProject(t, db, "After", models.MediaReference{Data: pngHeader})
	require.NoError(t, db.Migrator().DropTable(&models.Education{}))

	report, err := migration.NewPromoter(db, store).Run(context.Background(), migration.PromoteOptions{
		Entities: []string{models.OwnerEducation, models.OwnerProject},
	})
	require.NoError(t, err)
	require.Len(t, report.Slots, 2)
	assert.Equal(t, "education.logo", report.Slots[0].Slot)
	assert.Error(t, report.Slots[0].Err)
	assert.Len(t, report.Errors(), 1)
	assert.Equal(t, 1, report.Slots[1].Migrated)
	assert.NotEmpty(t, reload(t, db, project.ID).FeaturedImage.File)
}

func TestDemoter_BrokenSlotDoesNotStopTheRun(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := storage.NewMemoryStorage("")
	projects := promoted(t, db, store, "After")
	require.NoError(t, db.Migrator().DropTable(&models.Education{}))

	report, err := migration.NewDemoter(db, store).Run(context.Background(), migration.DemoteOptions{
		Confirm:  true,
		Entities: []string{models.OwnerEducation, models.OwnerProject},
	})
	require.NoError(t, err)
	require.Len(t, report.Slots, 2)
	assert.Error(t, report.Slots[0].Err)
	assert.Len(t, report.Errors(), 1)
	assert.Equal(t, 1, report.Cleared())
	assert.Nil(t, reload(t, db, projects[0].ID).FeaturedImage.Data)
}
