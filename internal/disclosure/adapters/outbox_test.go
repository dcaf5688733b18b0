package adapters

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skilloncall/internal/disclosure/models"
	id "skilloncall/pkg/domain"
	"skilloncall/pkg/platform/outbox"
)

func TestOutboxPublisher_Publish(t *testing.T) {
	store := outbox.NewInMemory()
	publisher := NewOutboxPublisher(store)

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	event, err := models.NewDisclosureEvent(id.UserID(uuid.New()), id.UserID(uuid.New()), 1, now)
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(context.Background(), event))

	pending := store.Pending()
	require.Len(t, pending, 1)
	entry := pending[0]
	assert.Equal(t, EventTypeContactDisclosed, entry.EventType)
	assert.Equal(t, event.RequesterID.String(), entry.AggregateID)
	assert.Equal(t, now, entry.CreatedAt)

	var body map[string]any
	require.NoError(t, json.Unmarshal(entry.Payload, &body))
	assert.Equal(t, event.ID.String(), body["id"])
	assert.Equal(t, event.TargetID.String(), body["target_id"])
	assert.Equal(t, "2026-03-14T12:00:00Z", body["occurred_at"])
	assert.EqualValues(t, 1, body["credits_used"])
	assert.NotContains(t, string(entry.Payload), "email")
}
