package repositories

import (
	"gorm.io/gorm"

	"portfolio_backend/internal/models"
)

// MediaRepository reads and writes one MediaReference slot of any media-bearing row
type MediaRepository interface {
	LoadRow(db *gorm.DB, slot models.MediaSlot, id uint) (interface{}, error)
	SaveSlot(db *gorm.DB, slot models.MediaSlot, row interface{}, extra map[string]interface{}) error
}

type MediaRepositoryImpl struct{}

func NewMediaRepository() MediaRepository {
	return &MediaRepositoryImpl{}
}

func (r *MediaRepositoryImpl) LoadRow(db *gorm.DB, slot models.MediaSlot, id uint) (interface{}, error) {
	row := slot.New()
	if err := db.First(row, id).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// SaveSlot persists every column of the slot, zero values included, so cleared
// channels are written as empty/NULL
func (r *MediaRepositoryImpl) SaveSlot(db *gorm.DB, slot models.MediaSlot, row interface{}, extra map[string]interface{}) error {
	columns := slot.Ref(row).Columns(slot.Prefix())
	for k, v := range extra {
		columns[k] = v
	}
	return db.Model(row).Updates(columns).Error
}
