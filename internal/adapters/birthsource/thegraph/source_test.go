package thegraph

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kitty-lineage/internal/ports/birthsource"
)

func newStubServer(t *testing.T, handler func(query string, vars map[string]any) (string, int)) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("stub: invalid request json: %v", err)
		}

		body, status := handler(req.Query, req.Variables)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func newTestSource(url string) *Source {
	return NewSource(NewClient(Config{URL: url, Timeout: 2 * time.Second}))
}

func TestListBirths_MapsRows(t *testing.T) {
	ts := newStubServer(t, func(query string, vars map[string]any) (string, int) {
		if !strings.Contains(query, "birthEvents") {
			t.Errorf("unexpected query: %s", query)
		}
		if vars["limit"] != float64(5) {
			t.Errorf("expected limit 5, got %v", vars["limit"])
		}
		return `{"data":{"birthEvents":[
			{"id":"b-1","owner":"0xAAAA000000000000000000000000000000000001","kittyId":"300","matronId":"100","sireId":"200","genes":"123","timestamp":"1709294400"}
		]}}`, http.StatusOK
	})
	defer ts.Close()

	got, err := newTestSource(ts.URL).ListBirths(context.Background(), "", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}

	rec := got[0]
	if rec.RecordID != "b-1" || rec.KittyID != "300" || rec.MatronID != "100" || rec.SireID != "200" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.OwnerAddress != "0xaaaa000000000000000000000000000000000001" {
		t.Fatalf("expected lowercased owner, got %q", rec.OwnerAddress)
	}
	if rec.BlockTime != time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected block time: %v", rec.BlockTime)
	}
}

func TestListBirths_OwnerFilterGoesInVariables(t *testing.T) {
	ts := newStubServer(t, func(query string, vars map[string]any) (string, int) {
		if !strings.Contains(query, "where") {
			t.Errorf("expected owner-filter query, got: %s", query)
		}
		if vars["owner"] != "0xabc0000000000000000000000000000000000001" {
			t.Errorf("expected lowercased owner var, got %v", vars["owner"])
		}
		return `{"data":{"birthEvents":[]}}`, http.StatusOK
	})
	defer ts.Close()

	_, err := newTestSource(ts.URL).ListBirths(context.Background(), "0xABC0000000000000000000000000000000000001", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetBirth_NotFound(t *testing.T) {
	ts := newStubServer(t, func(query string, vars map[string]any) (string, int) {
		return `{"data":{"birthEvent":null}}`, http.StatusOK
	})
	defer ts.Close()

	_, err := newTestSource(ts.URL).GetBirth(context.Background(), "nope")
	if !errors.Is(err, birthsource.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetGenome(t *testing.T) {
	ts := newStubServer(t, func(query string, vars map[string]any) (string, int) {
		if vars["id"] != "300" {
			t.Errorf("expected id 300, got %v", vars["id"])
		}
		return `{"data":{"kitty":{"id":"300","genes":"456"}}}`, http.StatusOK
	})
	defer ts.Close()

	genes, err := newTestSource(ts.URL).GetGenome(context.Background(), "300")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if genes != "456" {
		t.Fatalf("expected genes 456, got %q", genes)
	}
}

func TestQuery_GraphQLErrors(t *testing.T) {
	ts := newStubServer(t, func(query string, vars map[string]any) (string, int) {
		return `{"errors":[{"message":"field missing"}]}`, http.StatusOK
	})
	defer ts.Close()

	_, err := newTestSource(ts.URL).ListBirths(context.Background(), "", 5)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if !strings.Contains(err.Error(), "field missing") {
		t.Fatalf("expected graphql message in error, got %v", err)
	}
}

func TestQuery_Unauthorized(t *testing.T) {
	ts := newStubServer(t, func(query string, vars map[string]any) (string, int) {
		return `denied`, http.StatusUnauthorized
	})
	defer ts.Close()

	_, err := newTestSource(ts.URL).ListBirths(context.Background(), "", 5)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestQuery_NotConfigured(t *testing.T) {
	_, err := newTestSource("").ListBirths(context.Background(), "", 5)
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
