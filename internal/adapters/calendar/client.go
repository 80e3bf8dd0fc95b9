// Package calendar is the read-only client for the external calendar
// collaborator. The core only consumes the narrow event shape it needs;
// authentication is external, the client just forwards a bearer token.
package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/taskdesk/core/internal/domain/entities"
	"github.com/taskdesk/core/internal/infrastructure/config"
	"github.com/taskdesk/core/internal/infrastructure/logger"
	"github.com/taskdesk/core/internal/ports"
)

// Client fetches events from a Google-Calendar-shaped events API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	calendarID  string
	accessToken string
	log         *logger.Logger
}

// New creates a calendar client from configuration.
func New(cfg config.CalendarConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     cfg.BaseURL,
		calendarID:  cfg.CalendarID,
		accessToken: cfg.AccessToken,
		log:         log.WithComponent("calendar"),
	}
}

// Wire shapes of the events API. Start and end carry either a dateTime
// or, for all-day events, a bare date.
type eventTime struct {
	DateTime string `json:"dateTime"`
	Date     string `json:"date"`
}

type eventItem struct {
	ID       string    `json:"id"`
	Status   string    `json:"status"`
	Summary  string    `json:"summary"`
	Location string    `json:"location"`
	Start    eventTime `json:"start"`
	End      eventTime `json:"end"`
}

type eventList struct {
	Items []eventItem `json:"items"`
}

// Events returns the events between start and end. On any failure the
// caller gets an empty slice plus the error; the task side of a day
// view never depends on this succeeding.
func (c *Client) Events(ctx context.Context, start, end time.Time) ([]entities.CalendarEvent, error) {
	endpoint := fmt.Sprintf("%s/calendars/%s/events", c.baseURL, url.PathEscape(c.calendarID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build calendar request: %w", err)
	}

	q := req.URL.Query()
	q.Set("timeMin", start.Format(time.RFC3339))
	q.Set("timeMax", end.Format(time.RFC3339))
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch calendar events: unexpected status %d", resp.StatusCode)
	}

	var list eventList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode calendar events: %w", err)
	}

	events := make([]entities.CalendarEvent, 0, len(list.Items))
	for _, item := range list.Items {
		if item.Status == "cancelled" {
			continue
		}

		startAt, err := item.Start.parse()
		if err != nil {
			c.log.Warnw("Skipping event with unparseable start", "event_id", item.ID, "error", err)
			continue
		}
		endAt, err := item.End.parse()
		if err != nil {
			endAt = startAt
		}

		events = append(events, entities.CalendarEvent{
			ID:       item.ID,
			Summary:  item.Summary,
			Start:    startAt,
			End:      endAt,
			Location: item.Location,
		})
	}

	return events, nil
}

func (et eventTime) parse() (time.Time, error) {
	if et.DateTime != "" {
		return time.Parse(time.RFC3339, et.DateTime)
	}
	if et.Date != "" {
		return time.ParseInLocation("2006-01-02", et.Date, time.Local)
	}
	return time.Time{}, fmt.Errorf("event time has neither dateTime nor date")
}

var _ ports.CalendarProvider = (*Client)(nil)
