package logsys

import "fmt"

// Spec defines the logger configuration supplied at initialization.
// All fields can be configured via JSON or TOML configuration files.
type Spec struct {
	LogFilePath        string         `json:"log_file_path" toml:"log_file_path"`                 // Base path of the daily log file
	EngineLoggerName   string         `json:"engine_logger_name" toml:"engine_logger_name"`       // Display name of the engine channel
	RuntimeLoggerName  string         `json:"runtime_logger_name" toml:"runtime_logger_name"`     // Display name of the runtime channel
	ConsoleSinkPattern string         `json:"console_sink_pattern" toml:"console_sink_pattern"`   // Pattern for the console sink
	FileSinkPattern    string         `json:"file_sink_pattern" toml:"file_sink_pattern"`         // Pattern for the file sink
	Rotation           RotationConfig `json:"rotation" toml:"rotation"`                           // File rotation limits within a day
}

// RotationConfig bounds the daily log file. The sink always cuts at local
// midnight; these limits additionally apply within a single day.
type RotationConfig struct {
	MaxSizeMB  int  `json:"max_size_mb" toml:"max_size_mb"`   // Max size of a single file in MB before rotation
	MaxBackups int  `json:"max_backups" toml:"max_backups"`   // Max rotated files kept per day
	MaxAgeDays int  `json:"max_age_days" toml:"max_age_days"` // Max age of rotated files in days
	Compress   bool `json:"compress" toml:"compress"`         // Gzip rotated files
}

// DefaultSpec returns the configuration used when a field is left at its
// zero value.
func DefaultSpec() Spec {
	return Spec{
		LogFilePath:        "logs/app.log",
		EngineLoggerName:   "ENGINE",
		RuntimeLoggerName:  "RUNTIME",
		ConsoleSinkPattern: "%^[%T] [%n] [%l] [%s:%#]: %v%$",
		FileSinkPattern:    "[%T] [%l] [%n] [%s:%#]: %v",
		Rotation:           DefaultRotationConfig(),
	}
}

// DefaultRotationConfig returns the rotation limits applied when the Spec
// does not set its own.
func DefaultRotationConfig() RotationConfig {
	return RotationConfig{
		MaxSizeMB:  100,
		MaxBackups: 7,
		MaxAgeDays: 30,
		Compress:   false,
	}
}

// mergeSpec fills zero-valued fields of the user spec from the defaults.
func mergeSpec(user Spec) Spec {
	def := DefaultSpec()
	return Spec{
		LogFilePath:        getConfigValue(def.LogFilePath, user.LogFilePath),
		EngineLoggerName:   getConfigValue(def.EngineLoggerName, user.EngineLoggerName),
		RuntimeLoggerName:  getConfigValue(def.RuntimeLoggerName, user.RuntimeLoggerName),
		ConsoleSinkPattern: getConfigValue(def.ConsoleSinkPattern, user.ConsoleSinkPattern),
		FileSinkPattern:    getConfigValue(def.FileSinkPattern, user.FileSinkPattern),
		Rotation: RotationConfig{
			MaxSizeMB:  getConfigValue(def.Rotation.MaxSizeMB, user.Rotation.MaxSizeMB),
			MaxBackups: getConfigValue(def.Rotation.MaxBackups, user.Rotation.MaxBackups),
			MaxAgeDays: getConfigValue(def.Rotation.MaxAgeDays, user.Rotation.MaxAgeDays),
			Compress:   user.Rotation.Compress,
		},
	}
}

// validateSpec rejects configurations the sinks cannot honor.
func validateSpec(spec Spec) error {
	if spec.LogFilePath == "" {
		return fmt.Errorf("log file path must not be empty")
	}
	if spec.EngineLoggerName == spec.RuntimeLoggerName {
		return fmt.Errorf("channel names must differ: %q", spec.EngineLoggerName)
	}
	if spec.Rotation.MaxSizeMB < 0 || spec.Rotation.MaxBackups < 0 || spec.Rotation.MaxAgeDays < 0 {
		return fmt.Errorf("invalid rotation configuration")
	}
	if _, err := compilePattern(spec.ConsoleSinkPattern); err != nil {
		return fmt.Errorf("console sink pattern: %w", err)
	}
	if _, err := compilePattern(spec.FileSinkPattern); err != nil {
		return fmt.Errorf("file sink pattern: %w", err)
	}
	return nil
}

// getConfigValue returns defaultVal if cfgVal equals the zero value for type T,
// otherwise returns cfgVal. Type T must satisfy the comparable constraint.
// This is commonly used for merging configuration values with their defaults.
func getConfigValue[T comparable](defaultVal, cfgVal T) T {
	var zero T
	if cfgVal == zero {
		return defaultVal
	}
	return cfgVal
}
