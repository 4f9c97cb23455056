package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/zanta/lfp-client/internal/core/domain"
)

// Games returns the games facade. Mutations are admin-only by backend policy;
// nothing is enforced here.
func (c *Client) Games() *GamesAPI {
	return &GamesAPI{c: c}
}

// GamesAPI wraps the game catalogue endpoints.
type GamesAPI struct {
	c *Client
}

// List fetches all games.
func (g *GamesAPI) List(ctx context.Context) ([]domain.Game, error) {
	resp, err := g.c.Do(ctx, "/api/v1/games/all", Options{})
	if err != nil {
		return nil, err
	}
	raw, err := normalizeList(resp.Raw, "games")
	if err != nil {
		return nil, err
	}
	var games []domain.Game
	if err := json.Unmarshal(raw, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// Get fetches a single game by name.
func (g *GamesAPI) Get(ctx context.Context, name string) (*domain.Game, error) {
	resp, err := g.c.Do(ctx, "/api/v1/games/"+url.PathEscape(name), Options{})
	if err != nil {
		return nil, err
	}
	var game domain.Game
	if err := resp.Decode(&game); err != nil {
		return nil, err
	}
	return &game, nil
}

// Add creates a game.
func (g *GamesAPI) Add(ctx context.Context, game domain.Game) (*domain.Game, error) {
	resp, err := g.c.Do(ctx, "/api/v1/games/add", Options{
		Method: http.MethodPost,
		Body:   game,
	})
	if err != nil {
		return nil, err
	}
	var created domain.Game
	if err := resp.Decode(&created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces the game identified by name.
func (g *GamesAPI) Update(ctx context.Context, name string, game domain.Game) (*domain.Game, error) {
	resp, err := g.c.Do(ctx, "/api/v1/games/"+url.PathEscape(name), Options{
		Method: http.MethodPut,
		Body:   game,
	})
	if err != nil {
		return nil, err
	}
	var updated domain.Game
	if err := resp.Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Remove deletes the game identified by name.
func (g *GamesAPI) Remove(ctx context.Context, name string) error {
	_, err := g.c.Do(ctx, "/api/v1/games/"+url.PathEscape(name), Options{
		Method: http.MethodDelete,
	})
	return err
}
