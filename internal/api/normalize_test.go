package api

import (
	"encoding/json"
	"testing"
)

func TestNormalizeList_BareArray(t *testing.T) {
	raw, err := normalizeList([]byte(`[{"id":1},{"id":2}]`), "games")
	if err != nil {
		t.Fatalf("normalizeList: %v", err)
	}
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestNormalizeList_WrappedObject(t *testing.T) {
	raw, err := normalizeList([]byte(`{"posts":[{"id":7}]}`), "posts")
	if err != nil {
		t.Fatalf("normalizeList: %v", err)
	}
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
}

func TestNormalizeList_NullInnerBecomesEmpty(t *testing.T) {
	raw, err := normalizeList([]byte(`{"users":null}`), "users")
	if err != nil {
		t.Fatalf("normalizeList: %v", err)
	}
	if string(raw) != "[]" {
		t.Fatalf("expected empty array, got %s", raw)
	}
}

func TestNormalizeList_EmptyBodyBecomesEmpty(t *testing.T) {
	raw, err := normalizeList(nil, "users")
	if err != nil {
		t.Fatalf("normalizeList: %v", err)
	}
	if string(raw) != "[]" {
		t.Fatalf("expected empty array, got %s", raw)
	}
}

func TestNormalizeList_MissingKeyFails(t *testing.T) {
	if _, err := normalizeList([]byte(`{"other":[]}`), "games"); err == nil {
		t.Fatalf("expected error for missing key")
	}
}
