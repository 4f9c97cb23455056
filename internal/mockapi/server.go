// Package mockapi is an in-process imitation of the squad-finder backend,
// close enough to the real REST surface for local development and end-to-end
// tests: JWT auth over bcrypt-checked accounts, the catalogue/post/admin
// endpoints, and the backend's response envelopes.
package mockapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/zanta/lfp-client/internal/core/domain"
)

// Server hosts the mock backend.
type Server struct {
	e        *echo.Echo
	db       *store
	secret   []byte
	validate *validator.Validate
	log      zerolog.Logger
}

// New builds a mock server signing tokens with the given secret.
func New(jwtSecret string, log zerolog.Logger) *Server {
	s := &Server{
		e:        echo.New(),
		db:       newStore(),
		secret:   []byte(jwtSecret),
		validate: validator.New(),
		log:      log,
	}
	s.e.HideBanner = true
	s.routes()
	return s
}

// Handler exposes the underlying handler for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.e
}

// Start blocks serving on addr.
func (s *Server) Start(addr string) error {
	s.log.Info().Str("addr", addr).Msg("mock backend listening")
	return s.e.Start(addr)
}

// Seed loads a default admin account (admin/admin123) and a starter game so
// a fresh mock server is immediately usable.
func (s *Server) Seed() {
	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	s.db.createUser(domain.User{
		FirstName: "Default",
		LastName:  "Admin",
		Username:  "admin",
		Email:     "admin@lfp.local",
		Role:      domain.RoleAdmin,
	}, hash)
	s.db.addGame(domain.Game{
		Name:       "Valorant",
		Players:    5,
		PictureURL: "https://example.com/valorant.png",
		Modes:      []string{"Competitive", "Unrated"},
	})
}

func (s *Server) routes() {
	v1 := s.e.Group("/api/v1")

	v1.POST("/auth/register", s.register)
	v1.POST("/auth/authenticate", s.authenticate)

	games := v1.Group("/games")
	games.GET("/all", s.listGames)
	games.GET("/:name", s.getGame)
	games.POST("/add", s.addGame, auth(s.secret), adminOnly())
	games.PUT("/:name", s.updateGame, auth(s.secret), adminOnly())
	games.DELETE("/:name", s.deleteGame, auth(s.secret), adminOnly())

	posts := v1.Group("/posts")
	posts.GET("/all", s.listPosts, optionalAuth(s.secret))
	posts.GET("/:id", s.getPost, optionalAuth(s.secret))
	posts.POST("", s.createPost, auth(s.secret))
	posts.DELETE("/:id", s.deletePost, auth(s.secret))
	posts.POST("/:id/join", s.joinPost, auth(s.secret))
	posts.POST("/:id/cancel-join", s.cancelJoin, auth(s.secret))

	admin := v1.Group("/admin/users", auth(s.secret), adminOnly())
	admin.GET("", s.listUsers)
	admin.DELETE("/:id", s.deleteUser)
	admin.POST("/:id/make-admin", s.makeAdmin)
}

// --- auth ---

func (s *Server) register(c echo.Context) error {
	var req domain.Registration
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := s.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": fieldErrors(err)})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}

	user, err := s.db.createUser(domain.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Gender:    req.Gender,
		Role:      "MEMBER",
	}, hash)
	if err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}

	token, err := issueToken(s.secret, user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, domain.AuthResult{Token: token, User: user})
}

func (s *Server) authenticate(c echo.Context) error {
	var req domain.Credentials
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	acc, ok := s.db.findByUsername(req.Username)
	if !ok || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid username or password"})
	}

	user := acc.user
	token, err := issueToken(s.secret, &user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, domain.AuthResult{Token: token, User: &user})
}

// --- games ---

func (s *Server) listGames(c echo.Context) error {
	// Bare array, unlike the wrapped posts/users lists. The client's
	// normalizeList copes with both shapes.
	return c.JSON(http.StatusOK, s.db.listGames())
}

func (s *Server) getGame(c echo.Context) error {
	game, ok := s.db.gameByName(c.Param("name"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Game not found"})
	}
	return c.JSON(http.StatusOK, game)
}

func (s *Server) addGame(c echo.Context) error {
	var game domain.Game
	if err := c.Bind(&game); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := s.validate.Struct(game); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": fieldErrors(err)})
	}

	created, err := s.db.addGame(game)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Game already exists"})
	}
	return c.JSON(http.StatusOK, created)
}

func (s *Server) updateGame(c echo.Context) error {
	var game domain.Game
	if err := c.Bind(&game); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := s.validate.Struct(game); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": fieldErrors(err)})
	}

	updated, err := s.db.updateGame(c.Param("name"), game)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Game not found"})
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteGame(c echo.Context) error {
	if err := s.db.deleteGame(c.Param("name")); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Game not found"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Game deleted successfully"})
}

// --- posts ---

func (s *Server) listPosts(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"posts": s.db.renderPosts(callerID(c))})
}

func (s *Server) getPost(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid post id"})
	}
	post, ok := s.db.renderPost(id, callerID(c))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Post not found"})
	}
	return c.JSON(http.StatusOK, map[string]any{"post": post})
}

func (s *Server) createPost(c echo.Context) error {
	var draft domain.PostDraft
	if err := c.Bind(&draft); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := s.validate.Struct(draft); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": fieldErrors(err)})
	}

	game, ok := s.db.gameByID(draft.GameID)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Game not found"})
	}
	if draft.TeamSize > game.Players {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Team size cannot exceed max players of the game"})
	}

	rec := s.db.createPost(postRecord{
		title:     draft.Title,
		partyCode: draft.PartyCode,
		teamSize:  draft.TeamSize,
		gameID:    draft.GameID,
		rank:      draft.Rank,
		voiceChat: draft.VoiceChat,
		ownerID:   callerID(c),
	})
	post, _ := s.db.renderPost(rec.id, callerID(c))
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Post created successfully",
		"post":    post,
	})
}

func (s *Server) deletePost(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid post id"})
	}
	rec, ok := s.db.postByID(id)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Post not found"})
	}
	role, _ := c.Get("role").(string)
	if rec.ownerID != callerID(c) && role != domain.RoleAdmin {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not allowed to delete this post"})
	}
	if err := s.db.deletePost(id); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Post not found"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}

func (s *Server) joinPost(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid post id"})
	}

	switch err := s.db.joinPost(id, callerID(c)); {
	case err == nil:
		post, _ := s.db.renderPost(id, callerID(c))
		return c.JSON(http.StatusOK, map[string]any{
			"message": "You joined successfully",
			"post":    post,
		})
	case errors.Is(err, errPostNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Post not found"})
	case errors.Is(err, errOwnerJoin):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "You are the creator, you are already in"})
	case errors.Is(err, errAlreadyJoined):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "You have already joined this post"})
	case errors.Is(err, errPostFull):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Post is full"})
	case errors.Is(err, errPostInactive):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Post is no longer active"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func (s *Server) cancelJoin(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid post id"})
	}

	switch err := s.db.leavePost(id, callerID(c)); {
	case err == nil:
		return c.JSON(http.StatusOK, map[string]string{"message": "You left the post successfully"})
	case errors.Is(err, errPostNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Post not found"})
	case errors.Is(err, errOwnerLeave):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "You are the creator, you cannot leave your own post"})
	case errors.Is(err, errNotJoined):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "You have not joined this post"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

// --- admin users ---

func (s *Server) listUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"users": s.db.listUsers()})
}

func (s *Server) deleteUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
	}
	// Self-deletion guard, matching the real backend's behaviour.
	if id == callerID(c) {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "You cannot delete your own account"})
	}
	if err := s.db.deleteUser(id); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

func (s *Server) makeAdmin(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
	}
	if err := s.db.promoteUser(id); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User promoted to admin"})
}
