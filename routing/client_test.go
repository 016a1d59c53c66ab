package routing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRoute_ParsesLeg(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("origin") == "" || r.URL.Query().Get("destination") == "" {
			t.Errorf("missing origin/destination in query: %s", r.URL.RawQuery)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("api key not forwarded: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"routes": [{
				"legs": [{
					"distance": {"value": 4200, "text": "4.2 km"},
					"duration": {"value": 900, "text": "15 mins"}
				}]
			}]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", 2*time.Second)
	est, err := c.Route(context.Background(), "Mad Pizza, Karachi", "Clifton, Karachi")
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if est.DistanceKm != 4.2 {
		t.Fatalf("expected 4.2 km, got %v", est.DistanceKm)
	}
	if est.DurationMin != 15 {
		t.Fatalf("expected 15 min, got %v", est.DurationMin)
	}
	if est.DistanceText != "4.2 km" || est.DurationText != "15 mins" {
		t.Fatalf("texts not carried through: %+v", est)
	}
}

func TestRoute_NoRouteIsZeroNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"routes": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", 2*time.Second)
	est, err := c.Route(context.Background(), "a", "unroutable island")
	if err != nil {
		t.Fatalf("no-route must not be an error: %v", err)
	}
	if est != (Estimate{}) {
		t.Fatalf("expected zero estimate, got %+v", est)
	}
}

func TestRoute_NonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", 2*time.Second)
	if _, err := c.Route(context.Background(), "a", "b"); err == nil {
		t.Fatal("expected an error on 502")
	}
}

func TestRoute_SlowProviderTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`{"routes": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", 50*time.Millisecond)
	if _, err := c.Route(context.Background(), "a", "b"); err == nil {
		t.Fatal("expected timeout error from a slow provider")
	}
}
