package dto

// RadiusVenueRequest - запрос на поиск площадок в радиусе
type RadiusVenueRequest struct {
	Lat        float64  `json:"lat" validate:"required,min=-90,max=90"`
	Lon        float64  `json:"lon" validate:"required,min=-180,max=180"`
	RadiusKm   float64  `json:"radius_km" validate:"required,min=0.1,max=100"`
	Categories []string `json:"categories,omitempty" validate:"omitempty,dive,oneof=tourism leisure attraction sport"`
	Limit      int      `json:"limit" validate:"omitempty,min=1,max=500"`
}
