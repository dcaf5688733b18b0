// Package observability provides audit logging helpers for the disclosure module.
package observability

import (
	"context"
	"encoding/hex"
	"log/slog"
	"strings"

	"golang.org/x/crypto/blake2b"

	"skilloncall/internal/disclosure/models"
	"skilloncall/pkg/requestcontext"
)

// Audit event names.
const (
	EventContactDisclosed = "contact_disclosed"
	EventDisclosureDenied = "contact_disclosure_denied"
	EventCreditsGranted   = "disclosure_credits_granted"
	EventLimitsUpdated    = "disclosure_limits_updated"
	EventDisclosureFailed = "contact_disclosure_failed"
	EventContactSynced    = "worker_contact_synced"
)

// LogAudit writes an audit line enriched with request metadata.
func LogAudit(ctx context.Context, logger *slog.Logger, event string, attrs ...any) {
	if logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attrs = append(attrs, "request_id", requestID)
	}
	if ip := requestcontext.ClientIP(ctx); ip != "" {
		attrs = append(attrs, "client_ip", ip)
	}
	if client := requestcontext.ClientInfo(ctx); client != "" {
		attrs = append(attrs, "client", client)
	}
	args := append(attrs, "event", event, "log_type", "audit")
	logger.InfoContext(ctx, event, args...)
}

// ContactDigest fingerprints the contact details that were revealed so the
// audit trail can prove what was shown without storing the PII itself.
func ContactDigest(record models.ContactRecord) string {
	line2 := ""
	if record.AddressLine2 != nil {
		line2 = *record.AddressLine2
	}
	canonical := strings.Join([]string{
		strings.ToLower(strings.TrimSpace(record.Email)),
		record.Phone,
		record.AddressLine1,
		line2,
		record.City,
		record.Province,
		record.PostalCode,
	}, "\x1f")
	sum := blake2b.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
