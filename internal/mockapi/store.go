package mockapi

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/zanta/lfp-client/internal/core/domain"
)

var (
	errUserExists   = errors.New("username or email already taken")
	errUserNotFound = errors.New("user not found")
	errGameExists   = errors.New("game already exists")
	errGameNotFound = errors.New("game not found")
	errPostNotFound = errors.New("post not found")
)

type account struct {
	user         domain.User
	passwordHash []byte
}

type postRecord struct {
	id        int64
	title     string
	partyCode string
	teamSize  int
	gameID    int
	rank      string
	voiceChat bool
	active    bool
	createdAt time.Time
	ownerID   int64
	members   map[int64]struct{}
}

// store is the mock backend's in-memory database.
type store struct {
	mu         sync.Mutex
	users      map[int64]*account
	games      map[int]*domain.Game
	posts      map[int64]*postRecord
	nextUserID int64
	nextGameID int
	nextPostID int64
}

func newStore() *store {
	return &store{
		users: make(map[int64]*account),
		games: make(map[int]*domain.Game),
		posts: make(map[int64]*postRecord),
	}
}

func (s *store) createUser(u domain.User, passwordHash []byte) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, acc := range s.users {
		if strings.EqualFold(acc.user.Username, u.Username) || strings.EqualFold(acc.user.Email, u.Email) {
			return nil, errUserExists
		}
	}
	s.nextUserID++
	u.ID = s.nextUserID
	s.users[u.ID] = &account{user: u, passwordHash: passwordHash}
	out := u
	return &out, nil
}

func (s *store) findByUsername(username string) (*account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, acc := range s.users {
		if strings.EqualFold(acc.user.Username, username) {
			return acc, true
		}
	}
	return nil, false
}

func (s *store) listUsers() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.User, 0, len(s.users))
	for _, acc := range s.users {
		out = append(out, acc.user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *store) deleteUser(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return errUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *store) promoteUser(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.users[id]
	if !ok {
		return errUserNotFound
	}
	acc.user.Role = domain.RoleAdmin
	return nil
}

func (s *store) userByID(id int64) (*domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.users[id]
	if !ok {
		return nil, false
	}
	u := acc.user
	return &u, true
}

func (s *store) addGame(g domain.Game) (*domain.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.games {
		if strings.EqualFold(existing.Name, g.Name) {
			return nil, errGameExists
		}
	}
	s.nextGameID++
	g.ID = s.nextGameID
	s.games[g.ID] = &g
	out := g
	return &out, nil
}

func (s *store) updateGame(name string, g domain.Game) (*domain.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.gameByNameLocked(name)
	if !ok {
		return nil, errGameNotFound
	}
	g.ID = existing.ID
	s.games[g.ID] = &g
	out := g
	return &out, nil
}

func (s *store) deleteGame(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.gameByNameLocked(name)
	if !ok {
		return errGameNotFound
	}
	delete(s.games, g.ID)
	return nil
}

func (s *store) gameByName(name string) (*domain.Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.gameByNameLocked(name)
	if !ok {
		return nil, false
	}
	out := *g
	return &out, true
}

func (s *store) gameByNameLocked(name string) (*domain.Game, bool) {
	for _, g := range s.games {
		if strings.EqualFold(g.Name, name) {
			return g, true
		}
	}
	return nil, false
}

func (s *store) listGames() []domain.Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Game, 0, len(s.games))
	for _, g := range s.games {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *store) gameByID(id int) (*domain.Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[id]
	if !ok {
		return nil, false
	}
	out := *g
	return &out, true
}

func (s *store) createPost(rec postRecord) *postRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextPostID++
	rec.id = s.nextPostID
	rec.active = true
	rec.createdAt = time.Now().UTC()
	rec.members = make(map[int64]struct{})
	s.posts[rec.id] = &rec
	return &rec
}

func (s *store) postByID(id int64) (*postRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.posts[id]
	return rec, ok
}

func (s *store) listPosts() []*postRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*postRecord, 0, len(s.posts))
	for _, rec := range s.posts {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (s *store) deletePost(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return errPostNotFound
	}
	delete(s.posts, id)
	return nil
}

var (
	errOwnerJoin     = errors.New("owner cannot join own post")
	errOwnerLeave    = errors.New("owner cannot leave own post")
	errAlreadyJoined = errors.New("already joined")
	errNotJoined     = errors.New("not joined")
	errPostFull      = errors.New("post is full")
	errPostInactive  = errors.New("post is no longer active")
)

func (s *store) joinPost(id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.posts[id]
	if !ok {
		return errPostNotFound
	}
	if rec.ownerID == userID {
		return errOwnerJoin
	}
	if _, joined := rec.members[userID]; joined {
		return errAlreadyJoined
	}
	if !rec.active {
		return errPostInactive
	}
	// Owner counts as the first player.
	if len(rec.members)+1 >= rec.teamSize {
		return errPostFull
	}
	rec.members[userID] = struct{}{}
	return nil
}

func (s *store) leavePost(id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.posts[id]
	if !ok {
		return errPostNotFound
	}
	if rec.ownerID == userID {
		return errOwnerLeave
	}
	if _, joined := rec.members[userID]; !joined {
		return errNotJoined
	}
	delete(rec.members, userID)
	return nil
}

// renderPost projects a record into the wire shape for a given viewer:
// hasJoined reflects the viewer's membership and partyCode is only exposed
// to the owner and joined members.
func (s *store) renderPost(id, viewerID int64) (*domain.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.posts[id]
	if !ok {
		return nil, false
	}
	return s.renderLocked(rec, viewerID), true
}

func (s *store) renderPosts(viewerID int64) []domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.posts))
	for id := range s.posts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]domain.Post, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.renderLocked(s.posts[id], viewerID))
	}
	return out
}

func (s *store) renderLocked(rec *postRecord, viewerID int64) *domain.Post {
	_, joined := rec.members[viewerID]
	isOwner := rec.ownerID == viewerID

	post := &domain.Post{
		ID:             rec.id,
		Title:          rec.title,
		TeamSize:       rec.teamSize,
		CurrentPlayers: len(rec.members) + 1,
		Rank:           rec.rank,
		VoiceChat:      rec.voiceChat,
		Active:         rec.active,
		CreatedAt:      rec.createdAt,
		HasJoined:      joined,
	}
	if joined || isOwner {
		post.PartyCode = rec.partyCode
	}
	if acc, ok := s.users[rec.ownerID]; ok {
		owner := acc.user
		post.Owner = &owner
	}
	if g, ok := s.games[rec.gameID]; ok {
		game := *g
		post.Game = &game
	}
	return post
}
