package testutil

import (
	"net/http"
	"time"

	id "amlengine/pkg/domain"
	"amlengine/pkg/requestcontext"
)

// AsUser attaches an authenticated user to the request the way the auth
// middleware does.
func AsUser(req *http.Request, userID id.UserID) *http.Request {
	return req.WithContext(requestcontext.WithUserID(req.Context(), userID))
}

// AtTime pins the request-scoped clock.
func AtTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
