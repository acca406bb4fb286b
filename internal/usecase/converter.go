package usecase

import (
	"github.com/funmap-service/internal/domain"
)

// categoryKeys - порядок проверки тегов при определении категории площадки.
// Совпадает с порядком правил фильтра в запросе.
var categoryKeys = []string{
	domain.CategoryTourism,
	domain.CategoryLeisure,
	domain.CategoryAttraction,
	domain.CategorySport,
}

// ConvertElements сводит элементы Overpass к точечным фичам и площадкам.
// Элементы без представительной координаты пропускаются и учитываются
// в skipped.
func ConvertElements(elements []domain.Element) (features []domain.Feature, venues []*domain.Venue, skipped int) {
	for i := range elements {
		e := &elements[i]

		feature, ok := e.PointFeature()
		if !ok {
			skipped++
			continue
		}
		features = append(features, feature)

		lon, lat, _ := e.CenterPoint()
		category, kind := classify(e.Tags)
		venues = append(venues, &domain.Venue{
			OSMType:  e.Type,
			OSMId:    e.ID,
			Name:     e.Tags["name"],
			Category: category,
			Kind:     kind,
			Lat:      lat,
			Lon:      lon,
			Tags:     e.Tags,
		})
	}
	return features, venues, skipped
}

// classify определяет категорию по первому подходящему ключу тега
func classify(tags map[string]string) (category, kind string) {
	for _, key := range categoryKeys {
		if value, ok := tags[key]; ok && value != "" {
			return key, value
		}
	}
	return "", ""
}

// FeatureFromVenue восстанавливает точечный Feature из сохранённой площадки
func FeatureFromVenue(v *domain.Venue) domain.Feature {
	e := domain.Element{
		Type: v.OSMType,
		ID:   v.OSMId,
		Lat:  &v.Lat,
		Lon:  &v.Lon,
		Tags: v.Tags,
	}
	feature, _ := e.PointFeature()
	return feature
}
