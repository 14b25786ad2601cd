package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with timeouts suited to the JSON API. The write
// timeout leaves room for a slow screening provider call.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
