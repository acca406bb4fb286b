package domain

// MatchKind определяет способ сопоставления значения тега
type MatchKind string

const (
	// MatchExact - точное совпадение значения ("key"="value")
	MatchExact MatchKind = "exact"
	// MatchAnyOf - точное совпадение с одним из перечисленных значений
	MatchAnyOf MatchKind = "any_of"
	// MatchPrefix - совпадение по началу значения, допускает суффиксы-варианты
	MatchPrefix MatchKind = "prefix"
)

// FilterRule - предикат по одному тегу. Правила объединяются через OR:
// объект попадает в результат, если удовлетворяет хотя бы одному правилу.
type FilterRule struct {
	Key    string
	Kind   MatchKind
	Values []string
}

// Center - представительная точка для way/relation
type Center struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Bounds - ограничивающий прямоугольник элемента
type Bounds struct {
	MinLat float64 `json:"minlat"`
	MinLon float64 `json:"minlon"`
	MaxLat float64 `json:"maxlat"`
	MaxLon float64 `json:"maxlon"`
}

// Element - элемент ответа Overpass API (node, way или relation)
type Element struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *Center           `json:"center,omitempty"`
	Bounds *Bounds           `json:"bounds,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

// CenterPoint возвращает представительную координату элемента.
// Узлы отдают собственные lat/lon, way/relation - center из "out center;",
// при его отсутствии середину bounds. ok=false если координат нет вовсе.
func (e *Element) CenterPoint() (lon, lat float64, ok bool) {
	if e.Lat != nil && e.Lon != nil {
		return *e.Lon, *e.Lat, true
	}
	if e.Center != nil {
		return e.Center.Lon, e.Center.Lat, true
	}
	if e.Bounds != nil {
		return (e.Bounds.MinLon + e.Bounds.MaxLon) / 2,
			(e.Bounds.MinLat + e.Bounds.MaxLat) / 2, true
	}
	return 0, 0, false
}

// OSM3S - метаданные ответа Overpass
type OSM3S struct {
	TimestampOSMBase string `json:"timestamp_osm_base"`
	Copyright        string `json:"copyright"`
}

// OverpassResult - полный ответ Overpass API в формате [out:json]
type OverpassResult struct {
	Version   float64   `json:"version"`
	Generator string    `json:"generator"`
	OSM3S     OSM3S     `json:"osm3s"`
	Elements  []Element `json:"elements"`
	Remark    string    `json:"remark,omitempty"`
}
