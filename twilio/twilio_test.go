package twilio

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
		user, pass, ok := r.BasicAuth()
		if !ok || user != "AC123" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("Fields") != "caller_name" {
			t.Errorf("Fields = %q, want caller_name", r.URL.Query().Get("Fields"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"caller_name": {"caller_name": "DAVID LINDLEY", "caller_type": "CONSUMER"},
			"phone_number": "+14155552671",
			"country_code": "US",
			"valid": true
		}`))
	}))
	defer srv.Close()

	client, err := New(context.Background(),
		WithCredentials("AC123", "secret"),
		WithBaseURL(srv.URL),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	res, err := client.Hunt(context.Background(), source.Query{Phone: "+14155552671"})
	if err != nil {
		t.Fatalf("Hunt() error = %v", err)
	}

	if !res.Found {
		t.Fatal("Found = false, want true")
	}
	if len(res.Names) != 1 || res.Names[0] != "DAVID LINDLEY" {
		t.Errorf("Names = %v, want [DAVID LINDLEY]", res.Names)
	}
	if res.Fields["caller_type"] != "CONSUMER" {
		t.Errorf("caller_type = %q, want CONSUMER", res.Fields["caller_type"])
	}
	if res.Fields["valid"] != "true" {
		t.Errorf("valid = %q, want true", res.Fields["valid"])
	}
}

func TestHuntNoCallerName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"caller_name": null, "phone_number": "+14155552671", "country_code": "US", "valid": true}`))
	}))
	defer srv.Close()

	client, err := New(context.Background(), WithCredentials("AC123", "secret"), WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	res, err := client.Hunt(context.Background(), source.Query{Phone: "+14155552671"})
	if err != nil {
		t.Fatalf("Hunt() error = %v", err)
	}
	if res.Found {
		t.Error("Found = true, want false when CNAM has no record")
	}
}

func TestHuntNoCredentials(t *testing.T) {
	client, err := New(context.Background(), WithCredentials("", ""))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.Hunt(context.Background(), source.Query{Phone: "+14155552671"})
	if !errors.Is(err, source.ErrNoCredentials) {
		t.Errorf("Hunt() error = %v, want ErrNoCredentials", err)
	}
}
