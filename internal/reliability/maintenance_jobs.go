package reliability

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/advisor/internal/database"
	"github.com/aristath/advisor/internal/metrics"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/disk"
)

const (
	maintenanceTimeout = 5 * time.Minute
	backupTimeout      = 15 * time.Minute

	// Below this much free space on the data volume maintenance logs an error
	minFreeDiskBytes = 500 * 1024 * 1024
)

// MaintenanceJob checks database integrity, truncates the WAL and reports
// database size and free disk space
type MaintenanceJob struct {
	db      *database.DB
	dataDir string
	log     zerolog.Logger
}

// NewMaintenanceJob creates a new maintenance job
func NewMaintenanceJob(db *database.DB, dataDir string, log zerolog.Logger) *MaintenanceJob {
	return &MaintenanceJob{
		db:      db,
		dataDir: dataDir,
		log:     log.With().Str("job", "database_maintenance").Logger(),
	}
}

// Name returns the job name for scheduler
func (j *MaintenanceJob) Name() string {
	return "database_maintenance"
}

// Run executes the maintenance job
func (j *MaintenanceJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), maintenanceTimeout)
	defer cancel()

	j.log.Debug().Msg("Starting database maintenance")
	startTime := time.Now()

	if err := j.db.HealthCheck(ctx); err != nil {
		j.log.Error().Err(err).Msg("CRITICAL: Database integrity check failed")
		return fmt.Errorf("CRITICAL: integrity check failed: %w", err)
	}

	result, err := j.db.WALCheckpoint(ctx, "TRUNCATE")
	if err != nil {
		j.log.Error().Err(err).Msg("WAL checkpoint failed")
		return err
	}
	if result.Busy {
		j.log.Warn().
			Int("wal_frames", result.WALFrames).
			Int("checkpointed", result.Checkpointed).
			Msg("WAL checkpoint could not complete, database busy")
	}

	stats, err := j.db.GetStats()
	if err != nil {
		j.log.Warn().Err(err).Msg("Failed to read database stats")
	} else {
		metrics.DatabaseSizeBytes.Set(float64(stats.SizeBytes))
		j.log.Info().
			Int64("size_bytes", stats.SizeBytes).
			Int64("wal_size_bytes", stats.WALSizeBytes).
			Int64("freelist_count", stats.FreelistCount).
			Msg("Database metrics")
	}

	if err := j.checkDiskSpace(); err != nil {
		j.log.Warn().Err(err).Msg("Failed to check disk space")
	}

	j.log.Info().
		Dur("duration_ms", time.Since(startTime)).
		Msg("Database maintenance completed")

	return nil
}

func (j *MaintenanceJob) checkDiskSpace() error {
	usage, err := disk.Usage(j.dataDir)
	if err != nil {
		return fmt.Errorf("failed to get disk usage: %w", err)
	}

	if usage.Free < minFreeDiskBytes {
		j.log.Error().
			Uint64("free_bytes", usage.Free).
			Float64("used_percent", usage.UsedPercent).
			Msg("Low disk space on data volume")
		return nil
	}

	j.log.Debug().
		Uint64("free_bytes", usage.Free).
		Float64("used_percent", usage.UsedPercent).
		Msg("Disk space ok")
	return nil
}

// BackupJob uploads a fresh backup and rotates old ones
type BackupJob struct {
	service       *BackupService
	retentionDays int
	log           zerolog.Logger
}

// NewBackupJob creates a new backup job
func NewBackupJob(service *BackupService, retentionDays int, log zerolog.Logger) *BackupJob {
	return &BackupJob{
		service:       service,
		retentionDays: retentionDays,
		log:           log.With().Str("job", "backup").Logger(),
	}
}

// Name returns the job name for scheduler
func (j *BackupJob) Name() string {
	return "backup"
}

// Run executes the backup job. Rotation failures are logged, not returned.
func (j *BackupJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
	defer cancel()

	if _, err := j.service.CreateAndUploadBackup(ctx); err != nil {
		return err
	}

	if _, err := j.service.RotateOldBackups(ctx, j.retentionDays); err != nil {
		j.log.Error().Err(err).Msg("Backup rotation failed")
	}

	return nil
}
