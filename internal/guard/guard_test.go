package guard

import (
	"testing"

	"github.com/zanta/lfp-client/internal/core/domain"
	"github.com/zanta/lfp-client/internal/session"
)

func storeWith(t *testing.T, token, role string) *session.MemoryStore {
	t.Helper()
	store := session.NewMemoryStore()
	if token != "" {
		if err := store.Set(token, &domain.User{ID: 1, Username: "u", Role: role}); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	return store
}

func TestCheck_NoSessionRedirectsToSignIn(t *testing.T) {
	store := storeWith(t, "", "")
	if got := Check(store, false); got != RedirectSignIn {
		t.Fatalf("expected RedirectSignIn, got %v", got)
	}
	if got := Check(store, true); got != RedirectSignIn {
		t.Fatalf("expected RedirectSignIn for admin route too, got %v", got)
	}
}

func TestCheck_MemberOnAdminRouteRedirectsHome(t *testing.T) {
	store := storeWith(t, "tok", "MEMBER")
	if got := Check(store, true); got != RedirectHome {
		t.Fatalf("expected RedirectHome, got %v", got)
	}
}

func TestCheck_AdminOnAdminRouteRenders(t *testing.T) {
	store := storeWith(t, "tok", domain.RoleAdmin)
	if got := Check(store, true); got != Render {
		t.Fatalf("expected Render, got %v", got)
	}
}

func TestCheck_MemberOnPlainRouteRenders(t *testing.T) {
	store := storeWith(t, "tok", "MEMBER")
	if got := Check(store, false); got != Render {
		t.Fatalf("expected Render, got %v", got)
	}
}

func TestCheck_TokenWithoutUserOnAdminRouteRedirectsHome(t *testing.T) {
	// A token alone never implies an admin user.
	store := session.NewMemoryStore()
	if err := store.Set("tok", nil); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := Check(store, true); got != RedirectHome {
		t.Fatalf("expected RedirectHome, got %v", got)
	}
}

func TestCheck_ReadsStoreFreshEachTime(t *testing.T) {
	store := storeWith(t, "tok", "MEMBER")
	if got := Check(store, false); got != Render {
		t.Fatalf("expected Render, got %v", got)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got := Check(store, false); got != RedirectSignIn {
		t.Fatalf("expected RedirectSignIn after logout, got %v", got)
	}
}
