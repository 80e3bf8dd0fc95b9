package calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdesk/core/internal/infrastructure/config"
	"github.com/taskdesk/core/internal/infrastructure/logger"
)

const eventsFixture = `{
  "items": [
    {
      "id": "ev1",
      "status": "confirmed",
      "summary": "Standup",
      "location": "Room 2",
      "start": {"dateTime": "2026-09-02T10:00:00Z"},
      "end": {"dateTime": "2026-09-02T10:15:00Z"}
    },
    {
      "id": "ev2",
      "status": "confirmed",
      "summary": "Offsite",
      "start": {"date": "2026-09-02"},
      "end": {"date": "2026-09-03"}
    },
    {
      "id": "ev3",
      "status": "cancelled",
      "summary": "Old meeting",
      "start": {"dateTime": "2026-09-02T12:00:00Z"},
      "end": {"dateTime": "2026-09-02T13:00:00Z"}
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(config.CalendarConfig{
		BaseURL:     server.URL,
		CalendarID:  "primary",
		AccessToken: "token-123",
		Timeout:     5 * time.Second,
	}, logger.Nop())
}

func TestEventsParsesTimedAndAllDayEvents(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendars/primary/events", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.URL.Query().Get("timeMin"))
		assert.NotEmpty(t, r.URL.Query().Get("timeMax"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(eventsFixture))
	})

	start := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	events, err := client.Events(context.Background(), start, start.AddDate(0, 0, 1))
	require.NoError(t, err)

	// Cancelled events are dropped.
	require.Len(t, events, 2)

	assert.Equal(t, "ev1", events[0].ID)
	assert.Equal(t, "Standup", events[0].Summary)
	assert.Equal(t, "Room 2", events[0].Location)
	assert.Equal(t, time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC), events[0].Start.UTC())

	assert.Equal(t, "ev2", events[1].ID)
	y, m, d := events[1].Start.Date()
	assert.Equal(t, 2026, y)
	assert.Equal(t, time.September, m)
	assert.Equal(t, 2, d)
}

func TestEventsReturnsErrorOnBadStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	})

	events, err := client.Events(context.Background(), time.Now(), time.Now().Add(time.Hour))
	assert.Error(t, err)
	assert.Empty(t, events)
}

func TestEventsReturnsErrorOnBadBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{broken`))
	})

	_, err := client.Events(context.Background(), time.Now(), time.Now().Add(time.Hour))
	assert.Error(t, err)
}
