package model

import "time"

// BackupKind tells how a backup was triggered.
type BackupKind string

// Backup kinds.
const (
	BackupManual    BackupKind = "manual"
	BackupAutomatic BackupKind = "automatic"
)

// Backup is an entry in the backup history.
type Backup struct {
	ID        int64      `json:"id"`
	Kind      BackupKind `json:"kind"`
	SizeBytes int64      `json:"size_bytes"`
	CreatedAt time.Time  `json:"created_at"`
}

// Frequency is how often automatic backups run.
type Frequency string

// Backup frequencies.
const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Interval returns the duration between automatic backups.
func (f Frequency) Interval() time.Duration {
	switch f {
	case FrequencyWeekly:
		return 7 * 24 * time.Hour
	case FrequencyMonthly:
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly || f == FrequencyMonthly
}

// BackupSchedule configures automatic backups.
type BackupSchedule struct {
	Auto      bool      `json:"auto"`
	Frequency Frequency `json:"frequency"`
}

// DefaultBackupSchedule is daily automatic backups.
func DefaultBackupSchedule() BackupSchedule {
	return BackupSchedule{Auto: true, Frequency: FrequencyDaily}
}
