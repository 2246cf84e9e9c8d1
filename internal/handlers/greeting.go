package handlers

import "context"

// GreetingResponse is the response for the demo endpoint sitting behind the
// rate limiter.
type GreetingResponse struct {
	Body struct {
		Message   string `doc:"Greeting message"                example:"Hello, World!" json:"message"`
		RequestID string `doc:"Request ID assigned by the gate" json:"requestId,omitempty"`
	}
}

// GreetingHandler serves the demo endpoint.
type GreetingHandler struct{}

// NewGreetingHandler creates a new greeting handler.
func NewGreetingHandler() *GreetingHandler {
	return &GreetingHandler{}
}

// Greet returns a static greeting. It exists so the gate has something to
// protect; any handler registered on the API goes through the same limiter.
func (h *GreetingHandler) Greet(ctx context.Context, _ *struct{}) (*GreetingResponse, error) {
	resp := &GreetingResponse{}
	resp.Body.Message = "Hello, World!"
	resp.Body.RequestID = RequestMetaFromContext(ctx).RequestID

	return resp, nil
}
