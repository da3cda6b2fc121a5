package dtos

// ValidationErrorDetail is the structured form of a single failed
// validation rule, returned in the error envelope's details.
type ValidationErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type HealthCheckResponse struct {
	Status string `json:"status"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
