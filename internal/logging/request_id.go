package logging

import "github.com/google/uuid"

// GenerateRequestID generates a unique request ID.
func GenerateRequestID() string {
	return uuid.NewString()
}
