package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zanta/lfp-client/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:        1,
		FirstName: "Alice",
		LastName:  "Anders",
		Username:  "alice",
		Email:     "alice@example.com",
		Role:      "ADMIN",
	}
}

func TestFileStore_SetGetClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if store.Authenticated() {
		t.Fatalf("fresh store must not be authenticated")
	}

	if err := store.Set("abc123", testUser()); err != nil {
		t.Fatalf("Set: %v", err)
	}

	token, ok := store.Token()
	if !ok || token != "abc123" {
		t.Fatalf("expected token abc123, got %q (%v)", token, ok)
	}
	user, ok := store.User()
	if !ok || user.Username != "alice" || user.Role != "ADMIN" {
		t.Fatalf("unexpected user: %+v (%v)", user, ok)
	}
	if !store.Authenticated() {
		t.Fatalf("expected authenticated after Set")
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := store.Token(); ok {
		t.Fatalf("expected token absent after Clear")
	}
	if _, ok := store.User(); ok {
		t.Fatalf("expected user absent after Clear")
	}
	if store.Authenticated() {
		t.Fatalf("expected unauthenticated after Clear")
	}
}

func TestFileStore_SurvivesNewInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	first, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := first.Set("tok", testUser()); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// A second instance over the same path sees the committed session,
	// the way a new process would after a restart.
	second, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	token, ok := second.Token()
	if !ok || token != "tok" {
		t.Fatalf("expected persisted token, got %q (%v)", token, ok)
	}
	user, ok := second.User()
	if !ok || user.ID != 1 {
		t.Fatalf("expected persisted user, got %+v (%v)", user, ok)
	}
}

func TestFileStore_CorruptFileReadsAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if store.Authenticated() {
		t.Fatalf("corrupt session must read as absent")
	}
}

func TestFileStore_ClearIsIdempotent(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear on empty store: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()

	if err := store.Set("abc123", testUser()); err != nil {
		t.Fatalf("Set: %v", err)
	}
	token, ok := store.Token()
	if !ok || token != "abc123" {
		t.Fatalf("expected abc123, got %q", token)
	}

	// Mutating the returned copy must not leak into the store.
	user, _ := store.User()
	user.Role = "MEMBER"
	again, _ := store.User()
	if again.Role != "ADMIN" {
		t.Fatalf("store must hand out copies, got role %q", again.Role)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if store.Authenticated() {
		t.Fatalf("expected unauthenticated after Clear")
	}
}
