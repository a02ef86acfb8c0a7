package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the production endpoint of the external calendar API
const DefaultBaseURL = "https://www.googleapis.com/calendar/v3"

// EventAPI is the surface the orchestrator uses. All operations target the
// one fixed calendar the client was configured with.
type EventAPI interface {
	CreateEvent(ctx context.Context, in EventInput) (string, error)
	UpdateEvent(ctx context.Context, eventID string, in EventInput) error
	DeleteEvent(ctx context.Context, eventID string) error
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]Event, error)
}

// Client talks to the external calendar REST API through a session
type Client struct {
	session    *Session
	baseURL    string
	calendarID string
	timeZone   string

	// now is swapped in tests to pin the create-time fallbacks
	now func() time.Time
}

var _ EventAPI = (*Client)(nil)

// NewClient creates a calendar client bound to one target calendar
func NewClient(session *Session, baseURL, calendarID, timeZone string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		session:    session,
		baseURL:    baseURL,
		calendarID: calendarID,
		timeZone:   timeZone,
		now:        time.Now,
	}
}

// Session exposes the client's session for lifecycle calls
func (c *Client) Session() *Session {
	return c.session
}

// CreateEvent inserts an event for the item and returns the event id
func (c *Client) CreateEvent(ctx context.Context, in EventInput) (string, error) {
	body := buildCreateBody(in, c.timeZone, c.now().UTC())

	var created Event
	if err := c.do(ctx, http.MethodPost, c.eventsURL(""), body, &created, "create event"); err != nil {
		return "", err
	}
	return created.ID, nil
}

// UpdateEvent patches the event with the fields the item carries. Absent
// fields are omitted from the request, never sent as overwrites.
func (c *Client) UpdateEvent(ctx context.Context, eventID string, in EventInput) error {
	body := buildUpdateBody(in, c.timeZone)
	return c.do(ctx, http.MethodPatch, c.eventsURL(eventID), body, nil, "update event")
}

// DeleteEvent removes the event. Callers must treat failures here as
// warnings; calendar cleanup never blocks a local deletion.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	return c.do(ctx, http.MethodDelete, c.eventsURL(eventID), nil, nil, "delete event")
}

// ListEvents returns single-expanded instances in [timeMin, timeMax) ordered
// by start time ascending
func (c *Client) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]Event, error) {
	query := url.Values{}
	query.Set("timeMin", timeMin.UTC().Format(time.RFC3339))
	query.Set("timeMax", timeMax.UTC().Format(time.RFC3339))
	query.Set("singleEvents", "true")
	query.Set("orderBy", "startTime")

	var list struct {
		Items []Event `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, c.eventsURL("")+"?"+query.Encode(), nil, &list, "list events"); err != nil {
		return nil, err
	}
	return list.Items, nil
}

func (c *Client) eventsURL(eventID string) string {
	u := fmt.Sprintf("%s/calendars/%s/events", c.baseURL, url.PathEscape(c.calendarID))
	if eventID != "" {
		u += "/" + url.PathEscape(eventID)
	}
	return u
}

func (c *Client) do(ctx context.Context, method, rawURL string, body, out any, op string) error {
	httpClient := c.session.httpClient(ctx)
	if httpClient == nil {
		return calErr(op, 0, ErrNotConnected)
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return calErr(op, 0, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return calErr(op, 0, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return calErr(op, 0, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return calErr(op, resp.StatusCode, fmt.Errorf("%s", snippet))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return calErr(op, resp.StatusCode, err)
		}
	}

	return nil
}
