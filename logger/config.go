package logger

import (
	"fmt"
	"path/filepath"
	"slices"

	"go.uber.org/zap/zapcore"
)

var (
	validLevels    = []string{"debug", "info", "warn", "error", "fatal"}
	validEncodings = []string{"json", "console"}
)

// ManagerConfig global manager configuration (shared by all modules)
type ManagerConfig struct {
	Level         string `mapstructure:"level"`
	AppName       string `mapstructure:"app_name"` // injected into every entry, even when empty
	Encoding      string `mapstructure:"encoding"` // json or console
	EnableConsole bool   `mapstructure:"enable_console"`
	EnableCaller  bool   `mapstructure:"enable_caller"`

	// File output, rotated by lumberjack. Files land in BaseLogDir/<module>/<module>.log
	EnableFile bool   `mapstructure:"enable_file"`
	BaseLogDir string `mapstructure:"base_log_dir"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`

	// Trace ID configuration
	EnableTraceID    bool   `mapstructure:"enable_trace_id"`
	TraceIDFieldName string `mapstructure:"trace_id_field_name"`
}

// DefaultManagerConfig returns the defaults used when no logger section is configured
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		Level:            "info",
		Encoding:         "json",
		EnableConsole:    true,
		EnableCaller:     true,
		BaseLogDir:       "logs",
		MaxSize:          100,
		MaxBackups:       3,
		MaxAge:           28,
		EnableTraceID:    true,
		TraceIDFieldName: "trace_id",
	}
}

// ApplyDefaults fills zero-valued fields with default values (in-place modification)
// Booleans cannot be told apart from "unset" and are left as they are.
func (c *ManagerConfig) ApplyDefaults() {
	defaults := DefaultManagerConfig()

	if c.Level == "" {
		c.Level = defaults.Level
	}
	if c.Encoding == "" {
		c.Encoding = defaults.Encoding
	}
	if c.BaseLogDir == "" {
		c.BaseLogDir = defaults.BaseLogDir
	}
	if c.MaxSize == 0 {
		c.MaxSize = defaults.MaxSize
	}
	if c.MaxBackups == 0 {
		c.MaxBackups = defaults.MaxBackups
	}
	if c.MaxAge == 0 {
		c.MaxAge = defaults.MaxAge
	}
	if c.TraceIDFieldName == "" {
		c.TraceIDFieldName = defaults.TraceIDFieldName
	}
}

// Validate ManagerConfig configuration
func (c ManagerConfig) Validate() error {
	if !slices.Contains(validLevels, c.Level) {
		return fmt.Errorf("invalid log level: %s (valid values: %v)", c.Level, validLevels)
	}
	if !slices.Contains(validEncodings, c.Encoding) {
		return fmt.Errorf("invalid log encoding: %s (valid values: %v)", c.Encoding, validEncodings)
	}
	if c.EnableFile {
		if c.BaseLogDir == "" {
			return fmt.Errorf("base_log_dir is required when enable_file is set")
		}
		if c.MaxSize < 1 || c.MaxSize > 10000 {
			return fmt.Errorf("max_size must be between 1-10000 MB, current: %d", c.MaxSize)
		}
		if c.MaxBackups < 0 || c.MaxBackups > 1000 {
			return fmt.Errorf("max_backups must be between 0-1000, current: %d", c.MaxBackups)
		}
		if c.MaxAge < 0 || c.MaxAge > 3650 {
			return fmt.Errorf("max_age must be between 0-3650 days, current: %d", c.MaxAge)
		}
	}
	return nil
}

// ParseLevel parse log level string, unknown levels map to info
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func (c ManagerConfig) filePath(module string) string {
	return filepath.Join(c.BaseLogDir, module, module+".log")
}
