package handlers

type weatherParams struct {
	Latitude  string `query:"latitude" validate:"required"`
	Longitude string `query:"longitude" validate:"required"`
}

type geocodeParams struct {
	City string `query:"city" validate:"required"`
}

type GeocodeResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
