// Package migration moves media between storage tiers: Promoter copies legacy
// blobs into the storage backend, Demoter clears blobs that have a verified copy.
// Both walk each table by primary key in bounded batches and can be re-run.
package migration

import (
	"fmt"

	"gorm.io/gorm"

	"portfolio_backend/internal/models"
)

// Slots lists every media slot both jobs walk
func Slots() []models.MediaSlot {
	return models.MediaSlots
}

// filterSlots keeps the slots of the given entity tags; all slots when empty
func filterSlots(entities []string) []models.MediaSlot {
	if len(entities) == 0 {
		return Slots()
	}
	want := make(map[string]bool, len(entities))
	for _, e := range entities {
		want[e] = true
	}
	var out []models.MediaSlot
	for _, s := range Slots() {
		if want[s.Entity] {
			out = append(out, s)
		}
	}
	return out
}

// blobNullable reports whether the slot's data column accepts NULL
func blobNullable(db *gorm.DB, slot models.MediaSlot) (bool, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(slot.New()); err != nil {
		return false, fmt.Errorf("parse %s schema: %w", slot.Entity, err)
	}
	field := stmt.Schema.LookUpField(slot.Column("data"))
	if field == nil {
		return false, fmt.Errorf("%s has no column %s", stmt.Schema.Table, slot.Column("data"))
	}
	return !field.NotNull, nil
}

func slotName(slot models.MediaSlot) string {
	return slot.Entity + "." + slot.Field
}

const defaultBatchSize = 50
