package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/AlexTayron/task-habit/internal/models"
)

func connectedSession() *Session {
	s := NewSession(&oauth2.Config{})
	s.Connect(&oauth2.Token{AccessToken: "test-token"})
	return s
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestCreateEvent_SendsBodyAndReturnsID(t *testing.T) {
	var gotPath string
	var gotBody eventBody

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"id":"evt-123"}`)); err != nil {
			t.Errorf("Failed to write response: %v", err)
		}
	}))
	defer srv.Close()

	c := NewClient(connectedSession(), srv.URL, "work", "Europe/Lisbon")

	starts := time.Date(2026, 9, 3, 14, 0, 0, 0, time.UTC)
	ends := starts.Add(time.Hour)
	id, err := c.CreateEvent(context.Background(), EventInput{
		Title:       "Write report",
		Description: "quarterly numbers",
		StartsAt:    timePtr(starts),
		EndsAt:      timePtr(ends),
	})
	if err != nil {
		t.Fatalf("CreateEvent returned error: %v", err)
	}
	if id != "evt-123" {
		t.Errorf("Expected event id 'evt-123', got %q", id)
	}
	if gotPath != "/calendars/work/events" {
		t.Errorf("Expected path '/calendars/work/events', got %q", gotPath)
	}
	if gotBody.Summary == nil || *gotBody.Summary != "Write report" {
		t.Errorf("Expected summary 'Write report', got %v", gotBody.Summary)
	}
	if gotBody.Start == nil || gotBody.Start.DateTime != starts.Format(time.RFC3339) {
		t.Errorf("Expected start %s, got %+v", starts.Format(time.RFC3339), gotBody.Start)
	}
	if gotBody.Start.TimeZone != "Europe/Lisbon" {
		t.Errorf("Expected time zone 'Europe/Lisbon', got %q", gotBody.Start.TimeZone)
	}
	if len(gotBody.Recurrence) != 0 {
		t.Errorf("Expected no recurrence for a task event, got %v", gotBody.Recurrence)
	}
}

func TestCreateEvent_FallsBackToDefaultSchedule(t *testing.T) {
	var gotBody eventBody

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		if _, err := w.Write([]byte(`{"id":"evt-1"}`)); err != nil {
			t.Errorf("Failed to write response: %v", err)
		}
	}))
	defer srv.Close()

	c := NewClient(connectedSession(), srv.URL, "primary", "UTC")
	fixed := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	if _, err := c.CreateEvent(context.Background(), EventInput{Title: "No schedule"}); err != nil {
		t.Fatalf("CreateEvent returned error: %v", err)
	}

	if gotBody.Start == nil || gotBody.Start.DateTime != fixed.Format(time.RFC3339) {
		t.Errorf("Expected start to fall back to now, got %+v", gotBody.Start)
	}
	wantEnd := fixed.Add(defaultEventDuration).Format(time.RFC3339)
	if gotBody.End == nil || gotBody.End.DateTime != wantEnd {
		t.Errorf("Expected end to fall back to now+%s, got %+v", defaultEventDuration, gotBody.End)
	}
}

func TestCreateEvent_HabitCarriesRecurrence(t *testing.T) {
	var gotBody eventBody

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		if _, err := w.Write([]byte(`{"id":"evt-2"}`)); err != nil {
			t.Errorf("Failed to write response: %v", err)
		}
	}))
	defer srv.Close()

	c := NewClient(connectedSession(), srv.URL, "primary", "UTC")
	if _, err := c.CreateEvent(context.Background(), EventInput{
		Title:      "Read",
		Recurrence: models.HabitFrequencyDaily,
	}); err != nil {
		t.Fatalf("CreateEvent returned error: %v", err)
	}

	if len(gotBody.Recurrence) != 1 || gotBody.Recurrence[0] != "RRULE:FREQ=DAILY" {
		t.Errorf("Expected daily RRULE, got %v", gotBody.Recurrence)
	}
}

func TestUpdateEvent_OmitsAbsentFields(t *testing.T) {
	var raw map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("Expected PATCH, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(connectedSession(), srv.URL, "primary", "UTC")
	if err := c.UpdateEvent(context.Background(), "evt-9", EventInput{Title: "Renamed"}); err != nil {
		t.Fatalf("UpdateEvent returned error: %v", err)
	}

	if raw["summary"] != "Renamed" {
		t.Errorf("Expected summary 'Renamed', got %v", raw["summary"])
	}
	if _, present := raw["start"]; present {
		t.Error("Expected start to be omitted when the item carries no schedule")
	}
	if _, present := raw["end"]; present {
		t.Error("Expected end to be omitted when the item carries no schedule")
	}
}

func TestUpdateEvent_EmptyDescriptionClearsField(t *testing.T) {
	var raw map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(connectedSession(), srv.URL, "primary", "UTC")
	if err := c.UpdateEvent(context.Background(), "evt-9", EventInput{Title: "Renamed"}); err != nil {
		t.Fatalf("UpdateEvent returned error: %v", err)
	}

	desc, present := raw["description"]
	if !present {
		t.Fatal("Expected description to be sent so the calendar-side field is cleared")
	}
	if desc != "" {
		t.Errorf("Expected empty description, got %v", desc)
	}
}

func TestListEvents_QueryAndDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("singleEvents") != "true" {
			t.Errorf("Expected singleEvents=true, got %q", q.Get("singleEvents"))
		}
		if q.Get("orderBy") != "startTime" {
			t.Errorf("Expected orderBy=startTime, got %q", q.Get("orderBy"))
		}
		if q.Get("timeMin") == "" || q.Get("timeMax") == "" {
			t.Error("Expected timeMin and timeMax to be set")
		}
		if _, err := w.Write([]byte(`{"items":[
			{"id":"a","summary":"Standup","start":{"dateTime":"2026-09-02T09:00:00Z"}},
			{"id":"b","summary":"Offsite","start":{"date":"2026-09-04"}}
		]}`)); err != nil {
			t.Errorf("Failed to write response: %v", err)
		}
	}))
	defer srv.Close()

	c := NewClient(connectedSession(), srv.URL, "primary", "UTC")
	now := time.Now()
	events, err := c.ListEvents(context.Background(), now, now.Add(7*24*time.Hour))
	if err != nil {
		t.Fatalf("ListEvents returned error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}

	timed := events[0].Start.Resolve()
	if timed == nil || !timed.Equal(time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected timed start to resolve, got %v", timed)
	}
	allDay := events[1].Start.Resolve()
	if allDay == nil || !allDay.Equal(time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected all-day start to resolve to midnight, got %v", allDay)
	}
}

func TestDo_ErrorStatusWrapsCalendarError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(connectedSession(), srv.URL, "primary", "UTC")
	err := c.DeleteEvent(context.Background(), "evt-1")
	if err == nil {
		t.Fatal("Expected error for a 403 response")
	}

	var calendarErr *CalendarError
	if !errors.As(err, &calendarErr) {
		t.Fatalf("Expected CalendarError, got %T", err)
	}
	if calendarErr.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", calendarErr.StatusCode)
	}
}

func TestDo_DisconnectedSessionReturnsErrNotConnected(t *testing.T) {
	c := NewClient(NewSession(&oauth2.Config{}), "http://localhost:1", "primary", "UTC")

	_, err := c.CreateEvent(context.Background(), EventInput{Title: "x"})
	if err == nil {
		t.Fatal("Expected error for a disconnected session")
	}
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("Expected ErrNotConnected, got %v", err)
	}
}

func TestSession_ConnectDisconnect(t *testing.T) {
	s := NewSession(&oauth2.Config{})
	if s.Connected() {
		t.Error("Expected a new session to start disconnected")
	}

	s.Connect(&oauth2.Token{AccessToken: "tok"})
	if !s.Connected() {
		t.Error("Expected session to be connected after Connect")
	}

	// reconnecting replaces the token without error
	s.Connect(&oauth2.Token{AccessToken: "tok2"})
	if !s.Connected() {
		t.Error("Expected session to stay connected after reconnect")
	}

	s.Disconnect()
	if s.Connected() {
		t.Error("Expected session to be disconnected after Disconnect")
	}
}
