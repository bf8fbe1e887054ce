package migration

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/storage"
)

const (
	demoteWorker         = "media-clear-blobs"
	defaultDemoteBatch   = 500
	defaultVerifyTimeout = 5 * time.Second
)

// DemoteOptions: without Confirm the run only counts
type DemoteOptions struct {
	Confirm       bool
	Verify        bool
	VerifyTimeout time.Duration
	BatchSize     int
	Entities      []string
}

type DemoteSlotReport struct {
	Slot       string
	Candidates int
	Cleared    int
	Skipped    int
	Failed     int
	Err        error
}

type DemoteReport struct {
	DryRun bool
	Slots  []DemoteSlotReport
}

func (r *DemoteReport) Candidates() int { return r.sum(func(s DemoteSlotReport) int { return s.Candidates }) }
func (r *DemoteReport) Cleared() int    { return r.sum(func(s DemoteSlotReport) int { return s.Cleared }) }
func (r *DemoteReport) Skipped() int    { return r.sum(func(s DemoteSlotReport) int { return s.Skipped }) }
func (r *DemoteReport) Failed() int     { return r.sum(func(s DemoteSlotReport) int { return s.Failed }) }

func (r *DemoteReport) Errors() []error {
	var errs []error
	for _, s := range r.Slots {
		if s.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Slot, s.Err))
		}
	}
	return errs
}

func (r *DemoteReport) sum(f func(DemoteSlotReport) int) int {
	n := 0
	for _, s := range r.Slots {
		n += f(s)
	}
	return n
}

// Demoter clears legacy blobs of rows that already have a managed file. It never
// deletes the file.
type Demoter struct {
	db      *gorm.DB
	storage storage.Storage
}

func NewDemoter(db *gorm.DB, store storage.Storage) *Demoter {
	return &Demoter{db: db, storage: store}
}

func (d *Demoter) Run(ctx context.Context, opts DemoteOptions) (*DemoteReport, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultDemoteBatch
	}
	if opts.VerifyTimeout <= 0 {
		opts.VerifyTimeout = defaultVerifyTimeout
	}
	if opts.Verify && d.storage == nil {
		return nil, fmt.Errorf("verify requires a storage backend")
	}

	report := &DemoteReport{DryRun: !opts.Confirm}
	for _, slot := range filterSlots(opts.Entities) {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Slots = append(report.Slots, d.demoteSlot(ctx, slot, opts))
	}
	return report, ctx.Err()
}

func (d *Demoter) demoteSlot(ctx context.Context, slot models.MediaSlot, opts DemoteOptions) DemoteSlotReport {
	rep := DemoteSlotReport{Slot: slotName(slot)}

	var clearValue interface{} = []byte{}
	if opts.Confirm {
		nullable, err := blobNullable(d.db, slot)
		if err != nil {
			logger.WorkerLog(ctx, demoteWorker, "inspect schema", err, "slot", rep.Slot)
			rep.Err = err
			return rep
		}
		if nullable {
			clearValue = gorm.Expr("NULL")
		}
	}

	fileCol, dataCol := slot.Column("file"), slot.Column("data")
	var lastID uint
	for {
		if err := ctx.Err(); err != nil {
			rep.Err = err
			break
		}

		var rows []blobRow
		err := d.db.WithContext(ctx).Model(slot.New()).
			Select(fmt.Sprintf("id, %s AS file", fileCol)).
			Where("id > ?", lastID).
			Where(fmt.Sprintf("%s IS NOT NULL AND %s <> ''", fileCol, fileCol)).
			Where(fmt.Sprintf("%s IS NOT NULL AND LENGTH(%s) > 0", dataCol, dataCol)).
			Order("id ASC").
			Limit(opts.BatchSize).
			Scan(&rows).Error
		if err != nil {
			logger.WorkerLog(ctx, demoteWorker, "load batch", err, "slot", rep.Slot, "after_id", lastID)
			rep.Err = err
			break
		}
		if len(rows) == 0 {
			break
		}
		lastID = rows[len(rows)-1].ID
		rep.Candidates += len(rows)

		eligible := make([]uint, 0, len(rows))
		for _, row := range rows {
			if opts.Verify && !d.verify(ctx, row.File, opts.VerifyTimeout) {
				rep.Skipped++
				continue
			}
			eligible = append(eligible, row.ID)
		}
		if !opts.Confirm || len(eligible) == 0 {
			continue
		}

		err = d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Model(slot.New()).
				Where("id IN ?", eligible).
				UpdateColumn(dataCol, clearValue).Error
		})
		if err != nil {
			rep.Failed += len(eligible)
			logger.WorkerLog(ctx, demoteWorker, "clear batch", err, "slot", rep.Slot, "rows", len(eligible))
			continue
		}
		rep.Cleared += len(eligible)
	}

	logger.WorkerLog(ctx, demoteWorker, "slot finished", rep.Err,
		"slot", rep.Slot, "dry_run", !opts.Confirm,
		"candidates", rep.Candidates, "cleared", rep.Cleared, "skipped", rep.Skipped, "failed", rep.Failed)
	return rep
}

// verify checks the managed copy exists; an error counts as missing
func (d *Demoter) verify(ctx context.Context, handle string, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	exists, err := d.storage.Exists(ctx, handle)
	if err != nil {
		logger.WorkerLog(ctx, demoteWorker, "verify", err, "handle", handle)
		return false
	}
	return exists
}
