package api_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/zanta/lfp-client/internal/api"
	"github.com/zanta/lfp-client/internal/core/domain"
	"github.com/zanta/lfp-client/internal/guard"
	"github.com/zanta/lfp-client/internal/mockapi"
	"github.com/zanta/lfp-client/internal/session"
)

// startBackend spins up the seeded mock backend and returns a client
// bound to a fresh in-memory session.
func startBackend(t *testing.T) (*api.Client, *session.MemoryStore) {
	t.Helper()
	backend := mockapi.New("test-secret", zerolog.Nop())
	backend.Seed()
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore()
	client, err := api.New(api.Config{
		BaseURL: srv.URL,
		Session: store,
		Logger:  zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client, store
}

func signIn(t *testing.T, client *api.Client, store session.Store, username, password string) *domain.AuthResult {
	t.Helper()
	result, err := client.Auth().Login(context.Background(), domain.Credentials{
		Username: username,
		Password: password,
	})
	if err != nil {
		t.Fatalf("Login %s: %v", username, err)
	}
	if err := store.Set(result.Token, result.User); err != nil {
		t.Fatalf("Set: %v", err)
	}
	return result
}

func TestLoginEstablishesAdminSession(t *testing.T) {
	client, store := startBackend(t)

	result := signIn(t, client, store, "admin", "admin123")
	if result.Token == "" {
		t.Fatalf("expected a token")
	}
	if result.User == nil || result.User.Role != domain.RoleAdmin {
		t.Fatalf("expected seeded admin, got %+v", result.User)
	}

	token, ok := store.Token()
	if !ok || token != result.Token {
		t.Fatalf("session token mismatch: %q vs %q", token, result.Token)
	}
	if got := guard.Check(store, true); got != guard.Render {
		t.Fatalf("admin session must pass the admin gate, got %v", got)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	client, _ := startBackend(t)

	_, err := client.Auth().Login(context.Background(), domain.Credentials{
		Username: "admin",
		Password: "wrong",
	})
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %v", err)
	}
	if apiErr.Status != 401 || apiErr.Message != "Invalid username or password" {
		t.Fatalf("unexpected error: %d %q", apiErr.Status, apiErr.Message)
	}
}

func TestCreatePostValidationSurfacesFieldMessage(t *testing.T) {
	client, store := startBackend(t)
	signIn(t, client, store, "admin", "admin123")

	_, err := client.Posts().Create(context.Background(), domain.PostDraft{
		Title:    "solo queue",
		TeamSize: 1,
		GameID:   1,
	})
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %v", err)
	}
	if apiErr.Status != 400 {
		t.Fatalf("expected 400, got %d", apiErr.Status)
	}
	if apiErr.Message != "must be at least 2" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}
	if apiErr.Fields["teamSize"] != "must be at least 2" {
		t.Fatalf("unexpected fields %v", apiErr.Fields)
	}
}

func TestFullMatchmakingFlow(t *testing.T) {
	client, store := startBackend(t)
	ctx := context.Background()

	// Admin adds a second game to the catalogue.
	signIn(t, client, store, "admin", "admin123")
	dota, err := client.Games().Add(ctx, domain.Game{
		Name:       "Dota 2",
		Players:    5,
		PictureURL: "https://example.com/dota2.png",
		Modes:      []string{"All Pick"},
	})
	if err != nil {
		t.Fatalf("Add game: %v", err)
	}

	// Admin opens a duo post on it.
	post, err := client.Posts().Create(ctx, domain.PostDraft{
		Title:    "chill duo, mic required",
		TeamSize: 2,
		GameID:   dota.ID,
		Rank:     "Archon",
	})
	if err != nil {
		t.Fatalf("Create post: %v", err)
	}
	if post.CurrentPlayers != 1 {
		t.Fatalf("owner must count as the first player, got %d", post.CurrentPlayers)
	}

	// A new member signs up and takes the open slot.
	bob, err := client.Auth().Register(ctx, domain.Registration{
		FirstName: "Bob",
		LastName:  "Briggs",
		Username:  "bob",
		Email:     "bob@example.com",
		Password:  "hunter22",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := store.Set(bob.Token, bob.User); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := guard.Check(store, true); got != guard.RedirectHome {
		t.Fatalf("member must be bounced off the admin gate, got %v", got)
	}

	msg, err := client.Posts().Join(ctx, post.ID)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if msg != "You joined successfully" {
		t.Fatalf("unexpected join message %q", msg)
	}

	// The board now shows the post as full and joined for bob.
	posts, err := client.Posts().List(ctx)
	if err != nil {
		t.Fatalf("List posts: %v", err)
	}
	var found *domain.Post
	for i := range posts {
		if posts[i].ID == post.ID {
			found = &posts[i]
		}
	}
	if found == nil {
		t.Fatalf("post %d missing from board", post.ID)
	}
	if found.CurrentPlayers != 2 || !found.HasJoined {
		t.Fatalf("unexpected board entry: %+v", found)
	}

	// A third player bounces off the full post.
	carol, err := client.Auth().Register(ctx, domain.Registration{
		FirstName: "Carol",
		LastName:  "Chen",
		Username:  "carol",
		Email:     "carol@example.com",
		Password:  "hunter23",
	})
	if err != nil {
		t.Fatalf("Register carol: %v", err)
	}
	if err := store.Set(carol.Token, carol.User); err != nil {
		t.Fatalf("Set: %v", err)
	}
	_, err = client.Posts().Join(ctx, post.ID)
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Message != "Post is full" {
		t.Fatalf("expected full-post rejection, got %v", err)
	}

	// Bob frees the slot again.
	if err := store.Set(bob.Token, bob.User); err != nil {
		t.Fatalf("Set: %v", err)
	}
	left, err := client.Posts().CancelJoin(ctx, post.ID)
	if err != nil {
		t.Fatalf("CancelJoin: %v", err)
	}
	if left != "You left the post successfully" {
		t.Fatalf("unexpected leave message %q", left)
	}

	// Members cannot delete someone else's post.
	err = client.Posts().Remove(ctx, post.ID)
	if !errors.As(err, &apiErr) || apiErr.Status != 403 {
		t.Fatalf("expected 403 for foreign post, got %v", err)
	}

	// Back as admin: user management.
	signIn(t, client, store, "admin", "admin123")
	users, err := client.Users().List(ctx)
	if err != nil {
		t.Fatalf("List users: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}

	if err := client.Users().Promote(ctx, bob.User.ID); err != nil {
		t.Fatalf("Promote: %v", err)
	}

	// Self-deletion stays forbidden.
	admin, _ := store.User()
	err = client.Users().Remove(ctx, admin.ID)
	if !errors.As(err, &apiErr) || apiErr.Status != 403 {
		t.Fatalf("expected self-deletion rejection, got %v", err)
	}
	if apiErr.Message != "You cannot delete your own account" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}

	if err := client.Users().Remove(ctx, carol.User.ID); err != nil {
		t.Fatalf("Remove carol: %v", err)
	}
}

func TestOwnerCannotJoinOwnPost(t *testing.T) {
	client, store := startBackend(t)
	ctx := context.Background()
	signIn(t, client, store, "admin", "admin123")

	post, err := client.Posts().Create(ctx, domain.PostDraft{
		Title:    "ranked grind",
		TeamSize: 3,
		GameID:   1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = client.Posts().Join(ctx, post.ID)
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Message != "You are the creator, you are already in" {
		t.Fatalf("expected creator rejection, got %v", err)
	}
}

func TestPartyCodeHiddenFromOutsiders(t *testing.T) {
	client, store := startBackend(t)
	ctx := context.Background()
	signIn(t, client, store, "admin", "admin123")

	post, err := client.Posts().Create(ctx, domain.PostDraft{
		Title:     "customs lobby",
		PartyCode: "XYZ123",
		TeamSize:  5,
		GameID:    1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post.PartyCode != "XYZ123" {
		t.Fatalf("owner must see the party code, got %q", post.PartyCode)
	}

	// Anonymous board view keeps the code private.
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	posts, err := client.Posts().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, p := range posts {
		if p.ID == post.ID && p.PartyCode != "" {
			t.Fatalf("party code leaked to anonymous viewer")
		}
	}
}
