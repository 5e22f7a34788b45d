package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// memoryStore is an in-memory usecase.IdempotencyStore for tests.
type memoryStore struct {
	data map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}}
}

func (s *memoryStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if existing, ok := s.data[key]; ok {
		return true, existing, nil
	}

	if response != nil {
		s.data[key] = response
	} else {
		s.data[key] = []byte("processing")
	}

	return false, nil, nil
}

func (s *memoryStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.data[key] = response
	return nil
}

func TestIdempotencyMiddlewareReplaysResponse(t *testing.T) {
	store := newMemoryStore()
	m := NewIdempotencyMiddleware(store)

	calls := 0
	handler := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"tr-1"}`))
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/transfer", nil)
		req.Header.Set(IdempotencyKeyHeader, "key-1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	first := send()
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", first.Code)
	}

	second := send()
	if second.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatal("expected replay header on second request")
	}

	if second.Body.String() != `{"id":"tr-1"}` {
		t.Fatalf("expected cached body, got %s", second.Body.String())
	}

	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}
}

func TestIdempotencyMiddlewareSkipsWithoutKey(t *testing.T) {
	m := NewIdempotencyMiddleware(newMemoryStore())

	calls := 0
	handler := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/transfer", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	if calls != 2 {
		t.Fatalf("expected handler to run twice without key, ran %d times", calls)
	}
}

func TestIdempotencyMiddlewareIgnoresReads(t *testing.T) {
	store := newMemoryStore()
	m := NewIdempotencyMiddleware(store)

	handler := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if len(store.data) != 0 {
		t.Fatal("GET requests must not touch the idempotency store")
	}
}

func TestIdempotencyMiddlewareDoesNotCacheErrors(t *testing.T) {
	store := newMemoryStore()
	m := NewIdempotencyMiddleware(store)

	handler := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"nope"}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/transfer", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if string(store.data["key-1"]) != "processing" {
		t.Fatalf("failed response must not be cached, got %s", store.data["key-1"])
	}
}
