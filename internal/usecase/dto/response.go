package dto

import (
	"strconv"
	"time"

	"github.com/funmap-service/internal/domain"
)

// VenueResult - площадка в ответе поиска
type VenueResult struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Kind     string  `json:"kind"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Distance float64 `json:"distance,omitempty"` // meters
}

// RadiusVenueResponse - ответ на поиск площадок в радиусе
type RadiusVenueResponse struct {
	Venues []VenueResult `json:"venues"`
	Total  int           `json:"total"`
}

// CategoriesResponse - распределение площадок по категориям
type CategoriesResponse struct {
	Categories []domain.CategoryCount `json:"categories"`
	Total      int                    `json:"total"`
}

// RefreshResponse - итог одного цикла обновления данных
type RefreshResponse struct {
	SnapshotID   string    `json:"snapshot_id"`
	FeatureCount int       `json:"feature_count"`
	SkippedCount int       `json:"skipped_count"`
	Endpoint     string    `json:"endpoint"`
	OSMTimestamp string    `json:"osm_timestamp,omitempty"`
	FetchedAt    time.Time `json:"fetched_at"`
}

// SnapshotResponse - метаданные последней загрузки
type SnapshotResponse struct {
	Snapshot *domain.Snapshot `json:"snapshot"`
}

// ConvertVenueResult переводит доменную площадку в ответ API.
// distanceKm < 0 означает, что дистанция не считалась.
func ConvertVenueResult(v *domain.Venue, distanceKm float64) VenueResult {
	result := VenueResult{
		ID:       formatVenueID(v),
		Name:     v.Name,
		Category: v.Category,
		Kind:     v.Kind,
		Lat:      v.Lat,
		Lon:      v.Lon,
	}
	if distanceKm >= 0 {
		result.Distance = distanceKm * 1000
	}
	return result
}

func formatVenueID(v *domain.Venue) string {
	return v.OSMType + "/" + strconv.FormatInt(v.OSMId, 10)
}
