package testutil

import (
	"net/http"

	id "skilloncall/pkg/domain"
	"skilloncall/pkg/requestcontext"
)

// WithRequester adds an authenticated requester to the request context, the
// way the auth middleware does for a valid token. An invalid userID leaves
// the request unauthenticated.
func WithRequester(req *http.Request, userID, tier string) *http.Request {
	parsed, err := id.ParseUserID(userID)
	if err != nil {
		return req
	}
	ctx := requestcontext.WithUserID(req.Context(), parsed)
	ctx = requestcontext.WithTier(ctx, tier)
	return req.WithContext(ctx)
}

// WithAdmin marks the request as coming from an admin.
func WithAdmin(req *http.Request) *http.Request {
	return req.WithContext(requestcontext.WithAdmin(req.Context(), true))
}
