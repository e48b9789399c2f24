package gcalendar_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"school-assistant/pkg/gcalendar"
)

type rewriteTransport struct {
	Transport http.RoundTripper
	Host      string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.Host
	return t.Transport.RoundTrip(req)
}

func TestCalendarClient(t *testing.T) {
	t.Run("Initialize with broken credentials", func(t *testing.T) {
		_, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(`{"broken":true}`))
		if err == nil {
			t.Errorf("expected decoding failure")
		}
	})

	t.Run("ListEvents against fake API", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"items": [
					{
						"id": "evt-1",
						"summary": "Sports Day",
						"location": "Main Ground",
						"start": {"dateTime": "2026-09-01T09:00:00Z"},
						"end": {"dateTime": "2026-09-01T12:00:00Z"}
					},
					{
						"id": "evt-2",
						"summary": "Founders Day",
						"start": {"date": "2026-09-05"},
						"end": {"date": "2026-09-06"}
					}
				]
			}`))
		}))
		defer ts.Close()

		httpClient := &http.Client{
			Transport: &rewriteTransport{
				Transport: http.DefaultTransport,
				Host:      ts.Listener.Addr().String(),
			},
		}

		client, err := gcalendar.NewClientFromHTTP(context.Background(), httpClient)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		events, err := client.ListEvents(context.Background(), gcalendar.ListEventsRequest{
			CalendarID: "school-calendar",
			TimeMin:    time.Now(),
			TimeMax:    time.Now().AddDate(0, 0, 7),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		if events[0].Summary != "Sports Day" {
			t.Errorf("unexpected summary: %s", events[0].Summary)
		}
		if events[1].StartTime.IsZero() {
			t.Errorf("expected all-day event start to be parsed")
		}
	})
}
