package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/ordering"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/pkg/apperrors"
)

// CollectionService writes ordered collection members. Every call is one
// transaction, so shifted siblings and the written row commit together.
type CollectionService interface {
	Create(ctx context.Context, db *gorm.DB, member ordering.Member, order *int) error
	Move(ctx context.Context, db *gorm.DB, collection string, id uint, order int) (ordering.Member, error)
	Delete(ctx context.Context, db *gorm.DB, collection string, id uint) error
	Names() []string
}

type collectionService struct {
	collectionRepo repositories.CollectionRepository
	imageSvc       ImageService
	mediaSvc       MediaService
}

func NewCollectionService(
	collectionRepo repositories.CollectionRepository,
	imageSvc ImageService,
	mediaSvc MediaService,
) CollectionService {
	return &collectionService{
		collectionRepo: collectionRepo,
		imageSvc:       imageSvc,
		mediaSvc:       mediaSvc,
	}
}

func (s *collectionService) Names() []string {
	names := make([]string, 0, len(models.OrderedCollections))
	for name := range models.OrderedCollections {
		names = append(names, name)
	}
	return names
}

func (s *collectionService) newMember(collection string) (ordering.Member, error) {
	factory, ok := models.OrderedCollections[collection]
	if !ok {
		return nil, apperrors.NotFound("collection", fmt.Sprintf("Unknown collection %q", collection))
	}
	return factory(), nil
}

func (s *collectionService) Create(ctx context.Context, db *gorm.DB, member ordering.Member, order *int) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		return s.collectionRepo.Create(tx, member, order)
	})
	if err != nil {
		return handleRepoError(err, "collection")
	}
	logger.CtxDebug(ctx, "collection member created", "type", fmt.Sprintf("%T", member), "order", member.GetOrder())
	return nil
}

func (s *collectionService) Move(ctx context.Context, db *gorm.DB, collection string, id uint, order int) (ordering.Member, error) {
	member, err := s.newMember(collection)
	if err != nil {
		return nil, err
	}
	if order < 0 {
		return nil, apperrors.ErrInvalidInput("collection", "Order must not be negative", map[string]int{"order": order})
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.collectionRepo.Find(tx, member, id); err != nil {
			return err
		}
		return s.collectionRepo.Move(tx, member, order)
	})
	if err != nil {
		return nil, handleRepoError(err, collection)
	}

	logger.CtxInfo(ctx, "collection member moved", "collection", collection, "id", id, "order", member.GetOrder())
	return member, nil
}

// Delete removes one member. Images attached to it and files in its own media
// slots are released in the same transaction.
func (s *collectionService) Delete(ctx context.Context, db *gorm.DB, collection string, id uint) error {
	member, err := s.newMember(collection)
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.collectionRepo.Find(tx, member, id); err != nil {
			return err
		}
		if err := s.collectionRepo.Delete(tx, member); err != nil {
			return err
		}

		if owner, ok := member.(models.Attachable); ok {
			ownerType, ownerID := owner.AttachmentOwner()
			if err := s.imageSvc.DeleteForOwner(ctx, tx, ownerType, ownerID); err != nil {
				return err
			}
		}
		return s.releaseSlots(ctx, member)
	})
	if err != nil {
		return handleRepoError(err, collection)
	}

	logger.CtxInfo(ctx, "collection member deleted", "collection", collection, "id", id)
	return nil
}

func (s *collectionService) releaseSlots(ctx context.Context, row interface{}) error {
	for _, slot := range models.SlotsFor(row) {
		if err := s.mediaSvc.Release(ctx, slot.Ref(row).File); err != nil {
			return err
		}
	}
	return nil
}
