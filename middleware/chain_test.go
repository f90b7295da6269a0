package middleware

import (
	"testing"

	"github.com/ffaiyaz23/boltgo/request"
	"github.com/ffaiyaz23/boltgo/response"
)

func testRequest() *request.Request {
	return &request.Request{
		Kind:    request.Event,
		Context: request.NewContext(nil),
	}
}

func recordingMiddleware(name string, trail *[]string) Middleware {
	return Func(func(req *request.Request, draft *response.Response, next Next) (*response.Response, error) {
		*trail = append(*trail, name+":in")
		resp, err := next(req)
		*trail = append(*trail, name+":out")
		return resp, err
	})
}

func TestChain_OrderingInAndOut(t *testing.T) {
	var trail []string
	chain := New([]Middleware{
		recordingMiddleware("a", &trail),
		recordingMiddleware("b", &trail),
		recordingMiddleware("c", &trail),
	})

	_, err := chain.Run(testRequest(), func(req *request.Request) (*response.Response, error) {
		trail = append(trail, "terminal")
		return response.Ok(), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a:in", "b:in", "c:in", "terminal", "c:out", "b:out", "a:out"}
	if len(trail) != len(want) {
		t.Fatalf("trail = %v, want %v", trail, want)
	}
	for i := range want {
		if trail[i] != want[i] {
			t.Fatalf("trail = %v, want %v", trail, want)
		}
	}
}

func TestChain_ShortCircuit(t *testing.T) {
	var trail []string
	shortCircuiter := Func(func(req *request.Request, draft *response.Response, next Next) (*response.Response, error) {
		trail = append(trail, "short")
		return response.Text(401, "nope"), nil
	})
	chain := New([]Middleware{
		shortCircuiter,
		recordingMiddleware("never", &trail),
	})

	resp, err := chain.Run(testRequest(), func(req *request.Request) (*response.Response, error) {
		trail = append(trail, "terminal")
		return response.Ok(), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if len(trail) != 1 || trail[0] != "short" {
		t.Fatalf("trail = %v, want [short]", trail)
	}
}

func TestChain_EmptyRunsTerminal(t *testing.T) {
	chain := New(nil)
	ran := false
	_, err := chain.Run(testRequest(), func(req *request.Request) (*response.Response, error) {
		ran = true
		return response.Ok(), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran {
		t.Fatal("terminal was not invoked for an empty chain")
	}
}

func TestChain_MutatesContext(t *testing.T) {
	mutator := Func(func(req *request.Request, draft *response.Response, next Next) (*response.Response, error) {
		req.Context.TeamID = "T123"
		return next(req)
	})
	chain := New([]Middleware{mutator})

	var sawTeamID string
	_, _ = chain.Run(testRequest(), func(req *request.Request) (*response.Response, error) {
		sawTeamID = req.Context.TeamID
		return response.Ok(), nil
	})
	if sawTeamID != "T123" {
		t.Fatalf("TeamID = %q, want T123", sawTeamID)
	}
}
