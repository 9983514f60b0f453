package constants

const (
	// Rate limits (requests per minute)
	GlobalAuthLimit = 60 // Login/Register endpoints
)
