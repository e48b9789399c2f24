package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"school-assistant/internal/toolctx"
	"school-assistant/pkg/log"
)

func newTestClient() *Client {
	return New(log.NewNop(), Config{BaseURL: "http://unused"})
}

func TestClient_RequiresRunContext(t *testing.T) {
	client := newTestClient()

	_, err := client.ListClubs(context.Background())
	if !errors.Is(err, toolctx.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestClient_GetStudent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer caller-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/api/v1/students/lookup" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.URL.Query().Get("name") == "Nobody" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"error_code": 0,
			"message": "Success",
			"data": {"id": "stu-7", "name": "Rohan Mehta", "class": "8", "section": "B"}
		}`))
	}))
	defer ts.Close()

	client := newTestClient()
	ctx := toolctx.With(context.Background(), &toolctx.RunContext{
		Token:      "caller-token",
		BackendURL: ts.URL,
		UserID:     "parent-1",
	})

	t.Run("found", func(t *testing.T) {
		student, err := client.GetStudent(ctx, "Rohan")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if student.ID != "stu-7" || student.Name != "Rohan Mehta" {
			t.Errorf("unexpected student: %+v", student)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := client.GetStudent(ctx, "Nobody")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("bad credential", func(t *testing.T) {
		badCtx := toolctx.With(context.Background(), &toolctx.RunContext{
			Token:      "wrong",
			BackendURL: ts.URL,
		})
		_, err := client.GetStudent(badCtx, "Rohan")
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})
}

func TestClient_MintsServiceToken(t *testing.T) {
	var tokenCalls int

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		if r.FormValue("subject") != "parent-1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token": "minted-token", "token_type": "Bearer", "expires_in": 300}`))
	})
	mux.HandleFunc("/api/v1/clubs", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer minted-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error_code": 0, "data": [{"id": "club-1", "name": "Chess Club"}]}`))
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := New(log.NewNop(), Config{
		BaseURL:      ts.URL,
		TokenURL:     ts.URL + "/oauth/token",
		ClientID:     "assistant",
		ClientSecret: "secret",
	})

	ctx := toolctx.With(context.Background(), &toolctx.RunContext{UserID: "parent-1"})

	clubs, err := client.ListClubs(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clubs) != 1 || clubs[0].Name != "Chess Club" {
		t.Errorf("unexpected clubs: %+v", clubs)
	}

	// Second call hits the token cache.
	if _, err := client.ListClubs(ctx); err != nil {
		t.Fatalf("unexpected error on cached call: %v", err)
	}
	if tokenCalls != 1 {
		t.Errorf("expected 1 token mint, got %d", tokenCalls)
	}
}

func TestClient_NoCredential(t *testing.T) {
	client := newTestClient()
	ctx := toolctx.With(context.Background(), &toolctx.RunContext{UserID: "parent-1"})

	_, err := client.ListClubs(ctx)
	if !errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
}
