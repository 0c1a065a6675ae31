package truepeoplesearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/codeGROOVE-dev/namehunt/source"
)

const samplePage = `<html><body>
<div class="card">
  <h1 class="h4"> David Lindley </h1>
  <span>Age: 54</span>
  <div class="aka"><span>AKA:</span><ul><li>Dave Lindley</li><li>David E Lindley</li></ul></div>
</div>
</body></html>`

func TestParseHTML(t *testing.T) {
	res := parseHTML(samplePage)

	if !res.Found {
		t.Fatal("Found = false, want true")
	}
	want := []string{"David Lindley", "Dave Lindley", "David E Lindley"}
	if diff := cmp.Diff(want, res.Names); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
	if res.Fields["age"] != "54" {
		t.Errorf("age = %q, want 54", res.Fields["age"])
	}
}

func TestParseHTMLNoResultsBanner(t *testing.T) {
	res := parseHTML(`<html><body><h1>No Results Found</h1></body></html>`)
	if res.Found {
		t.Errorf("Found = true, want false; Names = %v", res.Names)
	}
}

func TestHunt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/results" {
			t.Errorf("path = %q, want /results", r.URL.Path)
		}
		if got := r.URL.Query().Get("phoneno"); got != "+14155552671" {
			t.Errorf("phoneno = %q, want +14155552671", got)
		}
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	client, err := New(context.Background(), WithBaseURL(srv.URL))
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
	if res.Names[0] != "David Lindley" {
		t.Errorf("Names[0] = %q, want David Lindley", res.Names[0])
	}
	if res.Fields["age"] != "54" {
		t.Errorf("age = %q, want 54", res.Fields["age"])
	}
}
