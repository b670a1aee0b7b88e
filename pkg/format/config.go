package format

import (
	"github.com/yaklabco/triviafmt/pkg/config"
	"github.com/yaklabco/triviafmt/pkg/fsutil"
)

// BackupConfigFromConfig creates an fsutil.BackupConfig from config.Config.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
// Check mode never writes, even when Write is also set.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return DefaultPipelineOptions()
	}
	return PipelineOptions{
		Write:               cfg.Write && !cfg.Check,
		Diff:                cfg.Diff || cfg.Format == config.FormatDiff,
		Backup:              BackupConfigFromConfig(cfg),
		StrictRaceDetection: true,
		Verify:              true,
	}
}
