package metadata

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"skilloncall/pkg/requestcontext"
)

// ClientMetadata extracts the client IP and User-Agent from the request and
// adds them, plus a parsed "browser/os" summary, to the context for the audit
// trail. This middleware should be applied early in the chain.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIPFromRequest(r)
		userAgent := r.Header.Get("User-Agent")

		ctx := requestcontext.WithClientMetadata(r.Context(), ip, userAgent, ClientInfo(userAgent))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientInfo summarizes a User-Agent as "browser/os", e.g. "Chrome/Windows 10".
// Bots are reported as "bot:<name>".
func ClientInfo(userAgent string) string {
	if userAgent == "" {
		return ""
	}
	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	if ua.Bot() {
		return "bot:" + browser
	}
	os := ua.OS()
	if ua.Mobile() {
		os += " (mobile)"
	}
	if browser == "" && os == "" {
		return "unknown"
	}
	return browser + "/" + os
}

// ClientIPFromRequest extracts the real client IP from the request, handling proxies and load balancers.
func ClientIPFromRequest(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs (client, proxy1, proxy2, ...)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr is "ip:port"; IPv6 is "[::1]:port"
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return strings.Trim(addr[:idx], "[]")
		}
		return addr
	}

	return "unknown"
}
