package domain

import "time"

// Категории площадок по ключу тега, которому соответствовало правило фильтра
const (
	CategoryTourism    = "tourism"
	CategoryLeisure    = "leisure"
	CategoryAttraction = "attraction"
	CategorySport      = "sport"
)

// Venue - развлекательная площадка из OSM, сведённая к одной точке
type Venue struct {
	ID        int64             `json:"id" db:"id"`
	OSMType   string            `json:"osm_type" db:"osm_type"`
	OSMId     int64             `json:"osm_id" db:"osm_id"`
	Name      string            `json:"name" db:"name"`
	Category  string            `json:"category" db:"category"`
	Kind      string            `json:"kind" db:"kind"`
	Lat       float64           `json:"lat" db:"lat"`
	Lon       float64           `json:"lon" db:"lon"`
	Tags      map[string]string `json:"tags,omitempty" db:"tags"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" db:"updated_at"`
}

// CategoryCount - количество площадок в категории
type CategoryCount struct {
	Category string `json:"category" db:"category"`
	Kind     string `json:"kind" db:"kind"`
	Count    int    `json:"count" db:"count"`
}
