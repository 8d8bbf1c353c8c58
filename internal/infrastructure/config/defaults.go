package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" && cfg.Database.Type == "sqlite" {
		cfg.Database.Path = "islandepoch.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "islandepoch"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "islandepoch"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Save defaults
	if cfg.Save.Backend == "" {
		cfg.Save.Backend = "file"
	}
	if cfg.Save.Dir == "" {
		cfg.Save.Dir = "."
	}
	if cfg.Save.FileName == "" {
		cfg.Save.FileName = "islandepoch_save.json"
	}
	if cfg.Save.Slot == "" {
		cfg.Save.Slot = "default"
	}

	// Game defaults
	if cfg.Game.TickInterval == 0 {
		cfg.Game.TickInterval = time.Second
	}
	if cfg.Game.AutosaveEveryTicks == 0 {
		cfg.Game.AutosaveEveryTicks = 10
	}
	if cfg.Game.AutosaveMinInterval == 0 {
		cfg.Game.AutosaveMinInterval = time.Minute
	}
	if cfg.Game.IslandUnlockPolicy == "" {
		cfg.Game.IslandUnlockPolicy = "open"
	}
	if cfg.Game.MaxCatchupTicks == 0 {
		cfg.Game.MaxCatchupTicks = 3600
	}

	// Daemon defaults
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/islandepoch-daemon.pid"
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 10 * time.Second
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
