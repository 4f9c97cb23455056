package domain

// Game is a title users can create posts for. Shape is a contract with the
// backend, not invented here.
type Game struct {
	ID         int      `json:"id"`
	Name       string   `json:"name" validate:"required,max=100"`
	Players    int      `json:"players" validate:"required,min=1"`
	PictureURL string   `json:"pictureUrl" validate:"required,url"`
	Modes      []string `json:"modes" validate:"required,min=1"`
}
