package repositories

import (
	"gorm.io/gorm"

	"portfolio_backend/internal/ordering"
)

// CollectionRepository runs writes on ordered collections through the ordering
// enforcer. Each method must be called inside a transaction.
type CollectionRepository interface {
	Create(tx *gorm.DB, member ordering.Member, requested *int) error
	Find(tx *gorm.DB, member ordering.Member, id uint) error
	Move(tx *gorm.DB, member ordering.Member, to int) error
	Delete(tx *gorm.DB, member ordering.Member) error
}

type CollectionRepositoryImpl struct{}

func NewCollectionRepository() CollectionRepository {
	return &CollectionRepositoryImpl{}
}

// Create inserts member at requested (nil appends)
func (r *CollectionRepositoryImpl) Create(tx *gorm.DB, member ordering.Member, requested *int) error {
	position, err := ordering.PrepareInsert(tx, member.OrderCollection(), requested)
	if err != nil {
		return err
	}
	member.SetOrder(position)
	return tx.Create(member).Error
}

func (r *CollectionRepositoryImpl) Find(tx *gorm.DB, member ordering.Member, id uint) error {
	return tx.First(member, id).Error
}

// Move expects a loaded member
func (r *CollectionRepositoryImpl) Move(tx *gorm.DB, member ordering.Member, to int) error {
	id, err := primaryKey(member)
	if err != nil {
		return err
	}
	if err := ordering.Move(tx, member.OrderCollection(), id, to); err != nil {
		return err
	}
	return tx.First(member, id).Error
}

// Delete expects a loaded member so the AfterDelete hook sees its owner
func (r *CollectionRepositoryImpl) Delete(tx *gorm.DB, member ordering.Member) error {
	return tx.Delete(member).Error
}

func primaryKey(member ordering.Member) (uint, error) {
	if m, ok := member.(interface{ GetID() uint }); ok && m.GetID() != 0 {
		return m.GetID(), nil
	}
	return 0, gorm.ErrPrimaryKeyRequired
}
