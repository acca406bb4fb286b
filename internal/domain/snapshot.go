package domain

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot - метаданные одной успешной загрузки данных из Overpass
type Snapshot struct {
	ID           uuid.UUID `json:"id" db:"id"`
	FeatureCount int       `json:"feature_count" db:"feature_count"`
	SkippedCount int       `json:"skipped_count" db:"skipped_count"`
	Endpoint     string    `json:"endpoint" db:"endpoint"`
	OSMTimestamp string    `json:"osm_timestamp" db:"osm_timestamp"`
	FetchedAt    time.Time `json:"fetched_at" db:"fetched_at"`
}

// Statistics - сводная статистика по загруженным данным
type Statistics struct {
	TotalVenues int            `json:"total_venues"`
	ByCategory  map[string]int `json:"by_category"`
	Snapshot    *Snapshot      `json:"snapshot,omitempty"`
	LastUpdated time.Time      `json:"last_updated"`
}
