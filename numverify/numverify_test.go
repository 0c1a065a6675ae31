package numverify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codeGROOVE-dev/namehunt/source"
)

func TestHunt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("access_key") != "nv-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"valid": true,
			"number": "14155552671",
			"country_name": "United States of America",
			"location": "Novato",
			"carrier": "AT&T Mobility LLC",
			"line_type": "mobile"
		}`))
	}))
	defer srv.Close()

	client, err := New(context.Background(), WithAPIKey("nv-key"), WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	res, err := client.Hunt(context.Background(), source.Query{Phone: "+14155552671"})
	if err != nil {
		t.Fatalf("Hunt() error = %v", err)
	}

	// Validation only: never found, never any names.
	if res.Found {
		t.Error("Found = true, want false")
	}
	if len(res.Names) != 0 {
		t.Errorf("Names = %v, want none", res.Names)
	}
	if res.Fields["carrier"] != "AT&T Mobility LLC" {
		t.Errorf("carrier = %q, want AT&T Mobility LLC", res.Fields["carrier"])
	}
	if res.Fields["line_type"] != "mobile" {
		t.Errorf("line_type = %q, want mobile", res.Fields["line_type"])
	}
	if res.Fields["valid"] != "true" {
		t.Errorf("valid = %q, want true", res.Fields["valid"])
	}
}

func TestHuntNoCredentials(t *testing.T) {
	client, err := New(context.Background(), WithAPIKey(""))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.Hunt(context.Background(), source.Query{Phone: "+14155552671"})
	if !errors.Is(err, source.ErrNoCredentials) {
		t.Errorf("Hunt() error = %v, want ErrNoCredentials", err)
	}
}
