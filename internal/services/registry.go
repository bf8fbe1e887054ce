package services

import (
	"portfolio_backend/internal/storage"
)

// ServiceContainer holds every application service
type ServiceContainer struct {
	MediaService      MediaService
	ImageService      ImageService
	CollectionService CollectionService
	SingletonService  SingletonService
	ContentService    ContentService
	ContactService    ContactService
	Storage           storage.Storage // nil when no backend is configured
}
