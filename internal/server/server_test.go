package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/hanpama/shopgraph/internal/auth"
	"github.com/hanpama/shopgraph/internal/engine"
	"github.com/hanpama/shopgraph/internal/store"
)

func newTestHandler(t *testing.T, opts ...Option) *Handler {
	t.Helper()
	st := store.Seed()
	eng := engine.New(st, auth.NewStaticVerifier(st, auth.DevTokens()))
	return New(eng, opts...)
}

func postJSON(t *testing.T, h *Handler, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/graphql", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v\n%s", err, w.Body.String())
	}
	return out
}

func TestPostQuery(t *testing.T) {
	h := newTestHandler(t)
	w := postJSON(t, h, `{"query":"{ products { id name price } }","variables":{"limit":2}}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}

	env := decodeEnvelope(t, w)
	if _, present := env["errors"]; present {
		t.Fatalf("unexpected errors key: %s", w.Body.String())
	}
	products := env["data"].(map[string]any)["products"].([]any)
	if len(products) > 2 {
		t.Fatalf("limit not applied: %d products", len(products))
	}
}

func TestBearerTokenForwarding(t *testing.T) {
	h := newTestHandler(t)

	// Without a token the user operation fails with UNAUTHENTICATED.
	w := postJSON(t, h, `{"query":"{ user { id email } }"}`, nil)
	env := decodeEnvelope(t, w)
	errs := env["errors"].([]any)
	ext := errs[0].(map[string]any)["extensions"].(map[string]any)
	if ext["code"] != "UNAUTHENTICATED" {
		t.Fatalf("expected UNAUTHENTICATED, got %v", ext)
	}

	// With a bearer token data.user resolves.
	w = postJSON(t, h, `{"query":"{ user { id email } }"}`, map[string]string{"Authorization": "Bearer alice-token"})
	env = decodeEnvelope(t, w)
	user := env["data"].(map[string]any)["user"].(map[string]any)
	if user["email"] != "alice@example.com" {
		t.Fatalf("unexpected user: %v", user)
	}

	// A malformed Authorization header counts as no token.
	w = postJSON(t, h, `{"query":"{ user { id } }"}`, map[string]string{"Authorization": "alice-token"})
	env = decodeEnvelope(t, w)
	if _, present := env["errors"]; !present {
		t.Fatalf("expected auth error for malformed header")
	}
}

func TestGetQuery(t *testing.T) {
	h := newTestHandler(t)
	q := url.Values{}
	q.Set("query", "{ products { id } }")
	q.Set("variables", `{"limit":1}`)
	req := httptest.NewRequest("GET", "/graphql?"+q.Encode(), nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	products := env["data"].(map[string]any)["products"].([]any)
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
}

func TestBatchRequests(t *testing.T) {
	h := newTestHandler(t)
	w := postJSON(t, h, `[{"query":"{ products { id } }"},{"query":"{ product(id: 1) { id } }"}]`,
		map[string]string{"Authorization": "Bearer alice-token"})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var out []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode batch: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}
	if _, ok := out[0]["data"].(map[string]any)["products"]; !ok {
		t.Fatalf("first result missing products: %v", out[0])
	}
	if _, ok := out[1]["data"].(map[string]any)["product"]; !ok {
		t.Fatalf("second result missing product: %v", out[1])
	}
}

func TestBadRequests(t *testing.T) {
	h := newTestHandler(t)

	w := postJSON(t, h, `{"variables":{}}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing query: status %d", w.Code)
	}

	w = postJSON(t, h, `{not json`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid JSON: status %d", w.Code)
	}

	w = postJSON(t, h, `[]`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty batch: status %d", w.Code)
	}

	req := httptest.NewRequest("PUT", "/graphql", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("PUT: status %d", rec.Code)
	}
}

func TestMaxBodyBytes(t *testing.T) {
	h := newTestHandler(t, WithMaxBodyBytes(10))
	w := postJSON(t, h, `{"query":"{ products { id } }"}`, nil)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 got %d", w.Code)
	}
}

func TestCORSAndPreflight(t *testing.T) {
	h := newTestHandler(t, WithCORS("*"))

	w := postJSON(t, h, `{"query":"{ products { id } }"}`, map[string]string{"Origin": "http://example.com"})
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS header")
	}

	pre := httptest.NewRequest("OPTIONS", "/graphql", nil)
	pre.Header.Set("Origin", "http://example.com")
	pre.Header.Set("Access-Control-Request-Headers", "Authorization")
	pw := httptest.NewRecorder()
	h.ServeHTTP(pw, pre)
	if pw.Code != http.StatusNoContent {
		t.Fatalf("preflight status %d", pw.Code)
	}
	if pw.Header().Get("Access-Control-Allow-Headers") != "Authorization" {
		t.Fatalf("preflight missing allow headers")
	}
}

func TestGraphiQLPage(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest("GET", "/graphql", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Fatalf("content type %q", ct)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("graphiql")) {
		t.Fatalf("not the GraphiQL page")
	}
}
