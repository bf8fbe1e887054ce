// Package testutil holds helpers shared by package tests: an in-memory sqlite
// database with the full schema and an HTTP test server over the real router.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"portfolio_backend/database"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"
)

var dbSeq atomic.Int64

// NewTestDB opens a private in-memory database and migrates every model. The
// connection is closed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Init("test")

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))

	db, err := database.Open("sqlite", dsn, "test")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// SeedProfile creates the singleton profile every collection hangs off
func SeedProfile(t *testing.T, db *gorm.DB) *models.Profile {
	t.Helper()
	profile := models.DefaultProfile()
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}
	return profile
}

// CreateProject inserts a visible project at the end of the profile's list
func CreateProject(t *testing.T, db *gorm.DB, title string, order int) *models.Project {
	t.Helper()
	project := &models.Project{
		ProfileID:    models.SingletonID,
		Title:        title,
		Technologies: datatypes.JSON(`["go"]`),
		IsVisible:    true,
		Order:        order,
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to create project %q: %v", title, err)
	}
	return project
}
