package errors

// ErrorInfo mirrors one entry of the ingest API error list.
type ErrorInfo struct {
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
	Code        string `json:"code,omitempty"`
}

type ErrorResponse struct {
	Errors []ErrorInfo `json:"errors"`
}

func NewErrorResponse(message, description string) ErrorResponse {
	return ErrorResponse{Errors: []ErrorInfo{{Message: message, Description: description}}}
}
