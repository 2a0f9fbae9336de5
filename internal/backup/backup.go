package backup

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/paws4pals/inventory/internal/model"
	"github.com/paws4pals/inventory/internal/store"
)

// SizeFunc measures the current inventory snapshot in bytes.
type SizeFunc func() (int64, error)

// Service records backups and runs the automatic schedule. Backups are
// history entries only; no archive is written.
type Service struct {
	DB   *sql.DB
	Size SizeFunc
	Now  func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create records a backup of the given kind sized from the current snapshot.
func (s *Service) Create(ctx context.Context, kind model.BackupKind, by *int64) (*model.Backup, error) {
	size, err := s.Size()
	if err != nil {
		return nil, fmt.Errorf("measuring snapshot: %w", err)
	}
	b, err := store.CreateBackup(ctx, s.DB, kind, size, s.now(), by)
	if err != nil {
		return nil, err
	}
	log.Info().Int64("backup", b.ID).Str("kind", string(kind)).Int64("bytes", size).Msg("backup created")
	return b, nil
}

// IsDue reports whether an automatic backup should run at now given the
// schedule and the most recent backup. With no previous backup one is due
// immediately.
func IsDue(schedule model.BackupSchedule, last *model.Backup, now time.Time) bool {
	if !schedule.Auto {
		return false
	}
	if last == nil {
		return true
	}
	return !now.Before(last.CreatedAt.Add(schedule.Frequency.Interval()))
}

// RunDue creates an automatic backup if one is due. It returns the new
// backup, or nil if none was needed.
func (s *Service) RunDue(ctx context.Context) (*model.Backup, error) {
	schedule, err := store.GetBackupSchedule(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	last, err := store.LatestBackup(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	if !IsDue(schedule, last, s.now()) {
		return nil, nil
	}
	return s.Create(ctx, model.BackupAutomatic, nil)
}

// Run checks for a due backup every interval until ctx is cancelled.
func (s *Service) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.RunDue(ctx); err != nil {
			log.Error().Err(err).Msg("automatic backup failed")
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
