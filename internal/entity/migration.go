package entity

import "time"

// Migration records the schema version the database is at.
type Migration struct {
	Version   int `gorm:"primaryKey;autoIncrement:false"`
	AppliedAt time.Time
}
