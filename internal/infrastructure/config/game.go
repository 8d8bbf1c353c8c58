package config

import "time"

// GameConfig holds simulation settings
type GameConfig struct {
	// Real time between ticks in the daemon
	TickInterval time.Duration `mapstructure:"tick_interval" validate:"required,min=1ms"`

	// Autosave after this many ticks, or after AutosaveMinInterval, whichever comes first
	AutosaveEveryTicks  int           `mapstructure:"autosave_every_ticks" validate:"min=1"`
	AutosaveMinInterval time.Duration `mapstructure:"autosave_min_interval"`

	// IslandUnlockPolicy: open or research
	IslandUnlockPolicy string `mapstructure:"island_unlock_policy" validate:"required,oneof=open research"`

	// Island that pays for research when a command does not name one
	ResearchIsland int `mapstructure:"research_island" validate:"min=0"`

	// Optional YAML catalog replacing the built-in blueprints and research
	CatalogPath string `mapstructure:"catalog_path"`

	// Upper bound on ticks replayed for time spent offline. Negative disables catch-up.
	MaxCatchupTicks int `mapstructure:"max_catchup_ticks" validate:"min=-1"`
}
