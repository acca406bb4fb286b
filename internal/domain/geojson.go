package domain

import "fmt"

// Geometry - геометрия GeoJSON. Сервис публикует только точки,
// координаты в порядке [lon, lat].
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Feature - объект GeoJSON с геометрией и свойствами
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// FeatureCollection - коллекция объектов GeoJSON
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

func NewFeatureCollection(features []Feature) *FeatureCollection {
	if features == nil {
		features = []Feature{}
	}
	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

// PointFeature строит точечный Feature из элемента Overpass.
// Свойства содержат полный набор тегов плюс @id и @type.
// ok=false если у элемента нет ни одной представительной координаты.
func (e *Element) PointFeature() (Feature, bool) {
	lon, lat, ok := e.CenterPoint()
	if !ok {
		return Feature{}, false
	}

	properties := make(map[string]interface{}, len(e.Tags)+2)
	for k, v := range e.Tags {
		properties[k] = v
	}
	properties["@id"] = fmt.Sprintf("%s/%d", e.Type, e.ID)
	properties["@type"] = e.Type

	return Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "Point",
			Coordinates: []float64{lon, lat},
		},
		Properties: properties,
	}, true
}
