package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"gigcal/internal/models"
	"gigcal/internal/shared"
)

func TestGoogleCalendarService(t *testing.T) {
	event := models.Event{
		Name:      "Arctic Monkeys Live",
		StartDate: "2025-06-01",
		EndDate:   "2025-06-01",
	}

	t.Run("Name", func(t *testing.T) {
		if svc := NewGoogleCalendarService("key", "", nil); svc.Name() != "Google Calendar" {
			t.Errorf("expected name 'Google Calendar', got %s", svc.Name())
		}
	})

	t.Run("Insert", func(t *testing.T) {
		t.Run("posts an all-day entry to the primary calendar", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/calendars/primary/events" {
					t.Errorf("expected path /calendars/primary/events, got %s", r.URL.Path)
				}
				if r.Method != http.MethodPost {
					t.Errorf("expected POST method, got %s", r.Method)
				}
				if r.URL.Query().Get("key") != "cal_key" {
					t.Errorf("expected key query parameter, got %s", r.URL.Query().Get("key"))
				}
				if r.Header.Get("Authorization") != "Bearer tok123" {
					t.Errorf("expected bearer token, got %s", r.Header.Get("Authorization"))
				}
				if r.Header.Get("Content-Type") != "application/json" {
					t.Errorf("expected JSON content type, got %s", r.Header.Get("Content-Type"))
				}

				body, _ := io.ReadAll(r.Body)
				var entry map[string]any
				if err := json.Unmarshal(body, &entry); err != nil {
					t.Fatalf("body should be JSON: %v", err)
				}
				if entry["summary"] != "Arctic Monkeys Live" {
					t.Errorf("expected summary 'Arctic Monkeys Live', got %v", entry["summary"])
				}
				start, _ := entry["start"].(map[string]any)
				end, _ := entry["end"].(map[string]any)
				if start["date"] != "2025-06-01" || end["date"] != "2025-06-01" {
					t.Errorf("unexpected entry dates: %v / %v", start, end)
				}

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]string{"id": "cal_evt_1", "status": "confirmed"})
			}))
			defer server.Close()

			svc := NewGoogleCalendarService("cal_key", server.URL, nil)
			id, err := svc.Insert(context.Background(), "tok123", event)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if id != "cal_evt_1" {
				t.Errorf("expected created entry id cal_evt_1, got %s", id)
			}
		})

		t.Run("rejects an empty access token", func(t *testing.T) {
			svc := NewGoogleCalendarService("cal_key", "http://127.0.0.1:1", nil)
			_, err := svc.Insert(context.Background(), "", event)
			if !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
		})

		t.Run("returns ErrUpstream on error status", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error": {"code": 403}}`))
			}))
			defer server.Close()

			svc := NewGoogleCalendarService("cal_key", server.URL, nil)
			_, err := svc.Insert(context.Background(), "tok123", event)
			if !errors.Is(err, shared.ErrUpstream) {
				t.Errorf("expected ErrUpstream, got %v", err)
			}
		})

		t.Run("returns ErrUpstream on malformed response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("created!"))
			}))
			defer server.Close()

			svc := NewGoogleCalendarService("cal_key", server.URL, nil)
			_, err := svc.Insert(context.Background(), "tok123", event)
			if !errors.Is(err, shared.ErrUpstream) {
				t.Errorf("expected ErrUpstream, got %v", err)
			}
		})
	})
}
