package models

import "time"

// DenialResponse is the body of a refused reveal.
type DenialResponse struct {
	Error            string `json:"error"`
	Reason           Reason `json:"reason"`
	Message          string `json:"message"`
	CreditsAvailable int    `json:"credits_available"`
	Limit            int    `json:"limit,omitempty"`
	Used             int    `json:"used,omitempty"`
	Retryable        bool   `json:"retryable"`
}

// NewDenialResponse renders a DisclosureError.
func NewDenialResponse(err *DisclosureError) DenialResponse {
	return DenialResponse{
		Error:            string(err.Reason),
		Reason:           err.Reason,
		Message:          err.Message,
		CreditsAvailable: err.CreditsAvailable,
		Limit:            err.Limit,
		Used:             err.Used,
		Retryable:        err.IsRetryable(),
	}
}

// HistoryItem is one past disclosure.
type HistoryItem struct {
	ID          string    `json:"id"`
	TargetID    string    `json:"target_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	CreditsUsed int       `json:"credits_used"`
}

type HistoryResponse struct {
	Events []HistoryItem `json:"events"`
	Count  int           `json:"count"`
}

func NewHistoryResponse(events []*DisclosureEvent) HistoryResponse {
	items := make([]HistoryItem, 0, len(events))
	for _, event := range events {
		items = append(items, HistoryItem{
			ID:          event.ID.String(),
			TargetID:    event.TargetID.String(),
			OccurredAt:  event.OccurredAt,
			CreditsUsed: event.CreditsUsed,
		})
	}
	return HistoryResponse{Events: items, Count: len(items)}
}

// RevealedTargetsResponse lists the target ids already revealed.
type RevealedTargetsResponse struct {
	Revealed []string `json:"revealed"`
}
