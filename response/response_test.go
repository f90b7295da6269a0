package response

import (
	"net/http"
	"testing"
)

func TestOk(t *testing.T) {
	r := Ok()
	if r.StatusCode != http.StatusOK || r.ContentType != "text/plain" || string(r.Body) != "[]" {
		t.Fatalf("unexpected Ok() response: %+v", r)
	}
}

func TestJSON_Map(t *testing.T) {
	r := JSON(404, map[string]string{"error": "no handler found"})
	if r.StatusCode != 404 {
		t.Fatalf("status = %d, want 404", r.StatusCode)
	}
	if r.ContentType != "application/json" {
		t.Fatalf("content type = %q", r.ContentType)
	}
	if string(r.Body) != `{"error":"no handler found"}` {
		t.Fatalf("body = %s", r.Body)
	}
}

func TestRedirect(t *testing.T) {
	r := Redirect("https://example.com/done")
	if r.StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want 302", r.StatusCode)
	}
	if r.Headers.Get("Location") != "https://example.com/done" {
		t.Fatalf("Location = %q", r.Headers.Get("Location"))
	}
}

func TestClone_Independent(t *testing.T) {
	orig := Ok()
	clone := orig.Clone()
	clone.Headers.Set("X-Test", "1")
	if orig.Headers.Get("X-Test") != "" {
		t.Fatalf("mutating clone's headers affected the original")
	}
}
