package constants

import "time"

const (
	AppName              = "studylit"
	Version              = "v0.3.0"
	DefaultKeyringUser   = "database-connection"
	JWTSecretKeyringUser = "jwt-secret"
	DefaultConfigDir     = "~/.config/studylit"
	DefaultConfigPath    = "~/.config/studylit/config.toml"
	DefaultDBPath        = "~/.config/studylit/studylit.db"

	// EnvDBConnection overrides the configured database for a single run.
	EnvDBConnection = "STUDYLIT_DB_CONNECTION"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is fixed-width so stored timestamps sort lexically.
	TimestampFormat = "2006-01-02T15:04:05.000000Z07:00"

	// Day rollover
	DefaultRolloverHour     = 3
	MinRolloverHour         = 0
	MaxRolloverHour         = 23
	ReferenceZoneName       = "JST"
	ReferenceUTCOffsetHours = 9

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "studylit-"
	BackupFileSuffix = ".db"

	// Server constants
	ServerLockfileName     = "studylit-server.lock"
	DefaultShutdownTimeout = 5 * time.Second
	APIPrefix              = "/api/v1"
)
