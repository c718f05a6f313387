package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	logpkg "github.com/evanxd/discord-agent-trigger/pkg/log"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type fakeGateway struct{ ready bool }

func (g fakeGateway) Ready() bool { return g.ready }

func doHealth(t *testing.T, store Pinger, gw Gateway) (*http.Response, map[string]string) {
	t.Helper()
	s := New(store, gw, logpkg.NewTestLogger())
	req := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
	rec := httptest.NewRecorder()
	s.handleHealth(rec, req)
	resp := rec.Result()
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return resp, body
}

func TestHealthOK(t *testing.T) {
	resp, body := doHealth(t, fakePinger{}, fakeGateway{ready: true})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["status"] != "ok" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestHealthStoreDown(t *testing.T) {
	resp, body := doHealth(t, fakePinger{err: errors.New("down")}, fakeGateway{ready: true})
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
	if body["store"] != "unreachable" || body["status"] != "not_serving" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestHealthGatewayNotReady(t *testing.T) {
	resp, body := doHealth(t, fakePinger{}, fakeGateway{ready: false})
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
	if body["gateway"] != "not_ready" {
		t.Fatalf("unexpected body: %v", body)
	}
}
