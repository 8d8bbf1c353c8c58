package config

// SaveConfig selects where the game is persisted
type SaveConfig struct {
	// Backend: file or database
	Backend string `mapstructure:"backend" validate:"required,oneof=file database"`

	// Directory and file name for the file backend
	Dir      string `mapstructure:"dir" validate:"required_if=Backend file"`
	FileName string `mapstructure:"file_name" validate:"required_if=Backend file"`

	// Slot names the row used by the database backend
	Slot string `mapstructure:"slot" validate:"required,max=64"`

	// Compress writes zstd-compressed payloads
	Compress bool `mapstructure:"compress"`
}
