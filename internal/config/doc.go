// Package config provides 12-factor configuration management for fsman.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Logging: dual-sink log settings (console level, rotating file)
//   - UI: interactive session presentation
//   - Workdir: starting directory for the session
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("logging to %s\n", cfg.Logging.File)
//
// Environment Variables:
//   - FSMAN_CONSOLE_LEVEL, FSMAN_LOG_LEVEL, FSMAN_LOG_FILE
//   - FSMAN_LOG_MAX_SIZE, FSMAN_LOG_MAX_BACKUPS, FSMAN_LOG_MAX_AGE
//   - FSMAN_NO_COLOR, FSMAN_WORKDIR
package config
