package persistence

import (
	"time"
)

// SaveGameModel represents the save_games table. One row per save slot.
type SaveGameModel struct {
	Slot      string    `gorm:"column:slot;primaryKey"`
	Version   int       `gorm:"column:version;not null"`
	Encoding  string    `gorm:"column:encoding;not null"` // json or json+zstd
	Payload   []byte    `gorm:"column:payload;not null"`
	Tick      int64     `gorm:"column:tick;not null;default:0"`
	Gold      int       `gorm:"column:gold;not null;default:0"`
	Epoch     int       `gorm:"column:epoch;not null;default:1"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (SaveGameModel) TableName() string {
	return "save_games"
}
