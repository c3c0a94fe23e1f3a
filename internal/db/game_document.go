package db

import (
	"time"

	"gorm.io/datatypes"
)

// GameDocument stores a whole game aggregate as JSON. Version increases by one
// on every save and guards against lost updates.
type GameDocument struct {
	ID        uint           `gorm:"primaryKey"`
	GameCode  string         `gorm:"size:12;uniqueIndex;not null"`
	State     string         `gorm:"size:32;not null"`
	Version   int64          `gorm:"not null;default:1"`
	Document  datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
}
