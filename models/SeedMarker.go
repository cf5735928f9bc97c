package models

import "time"

// SeedVersionKey is the marker key holding the last applied seed catalog version.
const SeedVersionKey = "seed_version"

// SeedMarker is a key/value record written by the seed manager.
type SeedMarker struct {
	Key       string `gorm:"primaryKey;size:64"`
	Version   int    `gorm:"not null;default:0"`
	UpdatedAt time.Time
}
