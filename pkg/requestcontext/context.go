// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Middleware sets the values; the disclosure service and its audit helpers read them
// without importing net/http.
//
//	requester := requestcontext.UserID(ctx)
//	tier := requestcontext.Tier(ctx)
//	requestID := requestcontext.RequestID(ctx)
package requestcontext

import (
	"context"

	id "skilloncall/pkg/domain"
)

type (
	userIDKey     struct{}
	tierKey       struct{}
	adminKey      struct{}
	clientIPKey   struct{}
	userAgentKey  struct{}
	clientInfoKey struct{}
	requestIDKey  struct{}
)

// Exported context keys for tests that need context.WithValue directly.
var (
	ContextKeyUserID     = userIDKey{}
	ContextKeyTier       = tierKey{}
	ContextKeyAdmin      = adminKey{}
	ContextKeyClientIP   = clientIPKey{}
	ContextKeyUserAgent  = userAgentKey{}
	ContextKeyClientInfo = clientInfoKey{}
	ContextKeyRequestID  = requestIDKey{}
)

// -----------------------------------------------------------------------------
// Auth context
// -----------------------------------------------------------------------------

// UserID retrieves the authenticated user ID from the context.
// Returns the zero value (nil UUID) if not set.
func UserID(ctx context.Context) id.UserID {
	if userID, ok := ctx.Value(ContextKeyUserID).(id.UserID); ok {
		return userID
	}
	return id.UserID{}
}

// WithUserID injects a user ID into the context.
func WithUserID(ctx context.Context, userID id.UserID) context.Context {
	return context.WithValue(ctx, ContextKeyUserID, userID)
}

// Tier retrieves the subscription tier of the authenticated user.
// An empty string means the user has no subscription.
func Tier(ctx context.Context) string {
	if tier, ok := ctx.Value(ContextKeyTier).(string); ok {
		return tier
	}
	return ""
}

// WithTier injects the subscription tier into the context.
func WithTier(ctx context.Context, tier string) context.Context {
	return context.WithValue(ctx, ContextKeyTier, tier)
}

// IsAdmin reports whether the authenticated user carries the admin role.
func IsAdmin(ctx context.Context) bool {
	admin, _ := ctx.Value(ContextKeyAdmin).(bool)
	return admin
}

// WithAdmin marks the context as belonging to an admin.
func WithAdmin(ctx context.Context, admin bool) context.Context {
	return context.WithValue(ctx, ContextKeyAdmin, admin)
}

// -----------------------------------------------------------------------------
// Client metadata
// -----------------------------------------------------------------------------

// ClientIP retrieves the client IP address from the context.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(ContextKeyClientIP).(string); ok {
		return ip
	}
	return ""
}

// UserAgent retrieves the raw User-Agent from the context.
func UserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(ContextKeyUserAgent).(string); ok {
		return ua
	}
	return ""
}

// ClientInfo retrieves the parsed "browser/os" summary from the context.
func ClientInfo(ctx context.Context) string {
	if info, ok := ctx.Value(ContextKeyClientInfo).(string); ok {
		return info
	}
	return ""
}

// WithClientMetadata injects client IP, raw User-Agent and its parsed summary.
func WithClientMetadata(ctx context.Context, clientIP, userAgent, clientInfo string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyClientIP, clientIP)
	ctx = context.WithValue(ctx, ContextKeyUserAgent, userAgent)
	ctx = context.WithValue(ctx, ContextKeyClientInfo, clientInfo)
	return ctx
}

// -----------------------------------------------------------------------------
// Request metadata
// -----------------------------------------------------------------------------

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}
