package utils

// Exit codes following GNU/POSIX conventions.
const (
	// ExitSuccess indicates a completed run, including runs with unreadable entries.
	ExitSuccess = 0
	// ExitFailure indicates a fatal root or output failure.
	ExitFailure = 1
	// ExitUsage indicates malformed flags or configuration.
	ExitUsage = 2
)

// ErrorLogFormat defines the formatting string for error log messages.
const ErrorLogFormat = "Error: %v"

// LoggerInitializationFailedMessageFormat reports a logger construction failure.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

// Configuration file locations.
const (
	// ConfigFileName is the name of the local configuration file.
	ConfigFileName = ".tree.yaml"
	// GlobalConfigDirectoryName is the directory under the home directory holding global configuration.
	GlobalConfigDirectoryName = ".tree"
	// GlobalConfigFileName is the name of the global configuration file.
	GlobalConfigFileName = "config.yaml"
)
