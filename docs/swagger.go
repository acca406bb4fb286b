// Package docs Funmap Service API.
//
// Сервис карты семейных развлечений на данных OpenStreetMap.
// Загружает через Overpass API зоопарки, аквапарки, аттракционы и
// спортивные площадки в настроенных регионах и отдаёт их в виде
// GeoJSON точек.
//
// Основные возможности:
// - Полная выгрузка площадок в формате GeoJSON FeatureCollection
// - Поиск площадок в радиусе от точки с сортировкой по дистанции
// - Распределение площадок по категориям и видам
// - Ручной запуск обновления данных из Overpass
// - Метаданные снимков и статистика
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//	- application/geo+json
//
// swagger:meta
package docs
