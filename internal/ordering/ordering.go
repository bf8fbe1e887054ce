// Package ordering keeps the sort_order column of a collection dense (0..n-1)
// and unique. Every function expects to run inside the caller's transaction.
package ordering

import (
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Column is the persisted position column of every ordered table
const Column = "sort_order"

// Collection identifies one owner's rows: the table (through a zero model value)
// and the owner columns that scope it. BlogCategory has no filters.
type Collection struct {
	Model   interface{}
	Filters map[string]interface{}
}

// Member is implemented by every ordered model
type Member interface {
	OrderCollection() Collection
	GetOrder() int
	SetOrder(order int)
}

func (c Collection) scope(tx *gorm.DB) *gorm.DB {
	q := tx.Session(&gorm.Session{NewDB: true, SkipHooks: true}).Model(c.Model)

	keys := make([]string, 0, len(c.Filters))
	for k := range c.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		q = q.Where(clause.Eq{Column: clause.Column{Name: k}, Value: c.Filters[k]})
	}
	return q
}

// Count returns the collection size
func Count(tx *gorm.DB, c Collection) (int, error) {
	var count int64
	if err := c.scope(tx).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count collection: %w", err)
	}
	return int(count), nil
}

// PrepareInsert makes room for a new row and returns the position it must be
// inserted at. nil appends after the current maximum (an empty collection
// starts at 0); any explicit position, 0 included, is clamped to [0, count] and
// every sibling at or above it moves up by one in a single statement.
func PrepareInsert(tx *gorm.DB, c Collection, requested *int) (int, error) {
	count, err := Count(tx, c)
	if err != nil {
		return 0, err
	}

	if requested == nil {
		if count == 0 {
			return 0, nil
		}
		var maxOrder int
		if err := c.scope(tx).Select("COALESCE(MAX(" + Column + "), -1)").Scan(&maxOrder).Error; err != nil {
			return 0, fmt.Errorf("read max order: %w", err)
		}
		return maxOrder + 1, nil
	}

	position := clamp(*requested, 0, count)
	if err := shiftFrom(tx, c, position, 0); err != nil {
		return 0, err
	}
	return position, nil
}

// Move places row id at position to. Siblings at or above to (excluding the row)
// shift up, the row takes to, and the collection is compacted so the gap left
// behind closes. Moving a row down therefore leaves it at to-1. Run it inside one
// transaction; the intermediate duplicate is never committed.
func Move(tx *gorm.DB, c Collection, id uint, to int) error {
	var current struct {
		ID        uint
		SortOrder int
	}
	if err := c.scope(tx).Select("id", Column).Where("id = ?", id).Take(&current).Error; err != nil {
		return err
	}

	count, err := Count(tx, c)
	if err != nil {
		return err
	}
	to = clamp(to, 0, count)
	if current.SortOrder == to {
		return nil
	}

	if err := shiftFrom(tx, c, to, id); err != nil {
		return err
	}
	if err := c.scope(tx).Where("id = ?", id).UpdateColumn(Column, to).Error; err != nil {
		return fmt.Errorf("set order: %w", err)
	}
	return Compact(tx, c)
}

// Compact rewrites the collection to 0..n-1 sorted by (sort_order, id). Rows
// already at their index are left alone.
func Compact(tx *gorm.DB, c Collection) error {
	var rows []struct {
		ID        uint
		SortOrder int
	}
	if err := c.scope(tx).Select("id", Column).Order(Column + " ASC").Order("id ASC").Scan(&rows).Error; err != nil {
		return fmt.Errorf("load collection: %w", err)
	}

	for i, row := range rows {
		if row.SortOrder == i {
			continue
		}
		if err := c.scope(tx).Where("id = ?", row.ID).UpdateColumn(Column, i).Error; err != nil {
			return fmt.Errorf("compact row %d: %w", row.ID, err)
		}
	}
	return nil
}

// Positions returns the sort_order values in (sort_order, id) order
func Positions(tx *gorm.DB, c Collection) ([]int, error) {
	var positions []int
	err := c.scope(tx).Order(Column+" ASC").Order("id ASC").Pluck(Column, &positions).Error
	return positions, err
}

func shiftFrom(tx *gorm.DB, c Collection, position int, exclude uint) error {
	q := c.scope(tx).Where(Column+" >= ?", position)
	if exclude != 0 {
		q = q.Where("id <> ?", exclude)
	}
	if err := q.UpdateColumn(Column, gorm.Expr(Column+" + ?", 1)).Error; err != nil {
		return fmt.Errorf("shift siblings: %w", err)
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
