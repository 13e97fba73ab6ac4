package middleware

import (
	"smart-assistant/pkg/log"
)

// Middleware holds the gin middlewares shared by the REST routes.
type Middleware struct {
	l      log.Logger
	apiKey string
}

// New creates the middleware set. An empty apiKey leaves the REST API open,
// which is only meant for local development.
func New(l log.Logger, apiKey string) Middleware {
	return Middleware{
		l:      l,
		apiKey: apiKey,
	}
}
