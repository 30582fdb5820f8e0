package constants

import "time"

const (
	AppName           = "quench"
	DefaultConfigPath = "~/.config/quench/quench.db"
	Version           = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard slot time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Reminder window defaults, applied when no schedule has been saved yet
	DefaultStartTime     = "08:00"
	DefaultEndTime       = "22:00"
	DefaultIntervalHours = 1

	// MinIntervalHours and MaxIntervalHours bound the interval picker. The
	// generator itself accepts any positive interval; these bounds apply to
	// user-facing configuration only.
	MinIntervalHours = 1
	MaxIntervalHours = 4

	// TriggerCallTimeout bounds every call into the trigger subsystem so a
	// wedged scheduler surfaces as an error instead of a hang.
	TriggerCallTimeout = 5 * time.Second

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "quench-"
	BackupFileSuffix = ".db"

	// Notifier constants
	NotifierLockfileName   = "quench-notifier.lock"
	NotificationDurationMs = 5000
	NotificationTitle      = "Time to hydrate!"
	TrayAppIdentifier      = "com.quenchapp.quench"

	// Daemon constants
	DaemonLockfileName = "quench-daemon.lock"
)
