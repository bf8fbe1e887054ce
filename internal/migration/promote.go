package migration

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/media"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/storage"
)

const promoteWorker = "media-promote"

type PromoteOptions struct {
	DryRun    bool
	BatchSize int
	Entities  []string // restrict to these entity tags; all when empty
}

// PromoteSlotReport counts one slot. In a dry run Migrated is what would be copied.
// Err is set when the slot could not be walked to the end.
type PromoteSlotReport struct {
	Slot     string
	Total    int
	Migrated int
	Skipped  int
	Failed   int
	Err      error
}

type PromoteReport struct {
	DryRun bool
	Slots  []PromoteSlotReport
}

func (r *PromoteReport) Migrated() int { return r.sum(func(s PromoteSlotReport) int { return s.Migrated }) }
func (r *PromoteReport) Skipped() int  { return r.sum(func(s PromoteSlotReport) int { return s.Skipped }) }
func (r *PromoteReport) Failed() int   { return r.sum(func(s PromoteSlotReport) int { return s.Failed }) }

// Errors lists the slots whose walk stopped early
func (r *PromoteReport) Errors() []error {
	var errs []error
	for _, s := range r.Slots {
		if s.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Slot, s.Err))
		}
	}
	return errs
}

func (r *PromoteReport) sum(f func(PromoteSlotReport) int) int {
	n := 0
	for _, s := range r.Slots {
		n += f(s)
	}
	return n
}

// Promoter copies legacy blobs into the storage backend. The blob is left in
// place; clearing it is Demoter's job.
type Promoter struct {
	db      *gorm.DB
	storage storage.Storage
}

func NewPromoter(db *gorm.DB, store storage.Storage) *Promoter {
	return &Promoter{db: db, storage: store}
}

// blobRow is the projection of one slot read by both jobs
type blobRow struct {
	ID       uint
	File     string
	Data     []byte
	Mime     string
	Filename string
}

func (p *Promoter) Run(ctx context.Context, opts PromoteOptions) (*PromoteReport, error) {
	if p.storage == nil && !opts.DryRun {
		return nil, errors.New("promote requires a storage backend")
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}

	report := &PromoteReport{DryRun: opts.DryRun}
	for _, slot := range filterSlots(opts.Entities) {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Slots = append(report.Slots, p.promoteSlot(ctx, slot, opts))
	}
	return report, ctx.Err()
}

// promoteSlot walks one slot. A query error ends the slot and is kept in the
// report so the remaining slots still run.
func (p *Promoter) promoteSlot(ctx context.Context, slot models.MediaSlot, opts PromoteOptions) PromoteSlotReport {
	rep := PromoteSlotReport{Slot: slotName(slot)}

	var total int64
	if err := p.db.WithContext(ctx).Model(slot.New()).Count(&total).Error; err != nil {
		logger.WorkerLog(ctx, promoteWorker, "count", err, "slot", rep.Slot)
		rep.Err = err
		return rep
	}
	rep.Total = int(total)

	fileCol, dataCol := slot.Column("file"), slot.Column("data")
	var lastID uint
	for {
		if err := ctx.Err(); err != nil {
			rep.Err = err
			break
		}

		var rows []blobRow
		err := p.db.WithContext(ctx).Model(slot.New()).
			Select(fmt.Sprintf("id, %s AS file, %s AS data, %s AS mime, %s AS filename",
				fileCol, dataCol, slot.Column("mime"), slot.Column("filename"))).
			Where("id > ?", lastID).
			Where(fmt.Sprintf("%s IS NOT NULL AND LENGTH(%s) > 0", dataCol, dataCol)).
			Where(fmt.Sprintf("(%s IS NULL OR %s = '')", fileCol, fileCol)).
			Order("id ASC").
			Limit(opts.BatchSize).
			Scan(&rows).Error
		if err != nil {
			logger.WorkerLog(ctx, promoteWorker, "load batch", err, "slot", rep.Slot, "after_id", lastID)
			rep.Err = err
			break
		}
		if len(rows) == 0 {
			break
		}

		for _, row := range rows {
			lastID = row.ID
			if opts.DryRun {
				rep.Migrated++
				continue
			}
			if err := p.promoteRow(ctx, slot, row); err != nil {
				rep.Failed++
				logger.WorkerLog(ctx, promoteWorker, "promote row", err, "slot", rep.Slot, "id", row.ID)
				continue
			}
			rep.Migrated++
		}
	}

	if rep.Err == nil {
		rep.Skipped = rep.Total - rep.Migrated - rep.Failed
	}
	logger.WorkerLog(ctx, promoteWorker, "slot finished", rep.Err,
		"slot", rep.Slot, "dry_run", opts.DryRun,
		"migrated", rep.Migrated, "skipped", rep.Skipped, "failed", rep.Failed)
	return rep
}

// promoteRow saves one blob and points the row at it. If the row update fails
// the saved object is deleted again.
func (p *Promoter) promoteRow(ctx context.Context, slot models.MediaSlot, row blobRow) error {
	contentType := row.Mime
	if contentType == "" {
		contentType = media.SniffMime(row.Data)
	}
	filename := strings.TrimSpace(row.Filename)
	if filename == "" {
		filename = FallbackFilename(slot, row.ID, contentType)
	}

	handle, err := p.storage.Save(ctx, storage.ObjectKey(slot.Dir, filename), bytes.NewReader(row.Data), contentType)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}

	updates := map[string]interface{}{slot.Column("file"): handle}
	if row.Filename == "" {
		updates[slot.Column("filename")] = filename
	}
	if row.Mime == "" {
		updates[slot.Column("mime")] = contentType
	}

	// Guard on the file column so a concurrent run cannot overwrite a handle
	fileCol := slot.Column("file")
	res := p.db.WithContext(ctx).Model(slot.New()).
		Where("id = ?", row.ID).
		Where(fmt.Sprintf("(%s IS NULL OR %s = '')", fileCol, fileCol)).
		UpdateColumns(updates)
	if res.Error == nil && res.RowsAffected == 0 {
		res.Error = errors.New("row changed during promotion")
	}
	if res.Error != nil {
		if delErr := p.storage.Delete(ctx, handle); delErr != nil {
			logger.WorkerLog(ctx, promoteWorker, "remove orphan", delErr, "handle", handle)
		}
		return fmt.Errorf("update row: %w", res.Error)
	}
	return nil
}

// FallbackFilename names a blob stored without a filename: {fallback}_{id}{ext}
func FallbackFilename(slot models.MediaSlot, id uint, mime string) string {
	return fmt.Sprintf("%s_%d%s", slot.Fallback, id, media.ExtensionForMime(mime))
}
