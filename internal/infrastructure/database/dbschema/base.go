package dbschema

import "time"

// BaseModel carries the common identifier and timestamp columns. IDs
// are ULID strings assigned by the application before insert.
type BaseModel struct {
	ID        string    `gorm:"type:varchar(26);primaryKey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}
