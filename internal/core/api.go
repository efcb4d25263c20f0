package core

// Request types

type CreateGameRequest struct {
	Placement string       `json:"placement,omitempty" validate:"omitempty,max=90"`
	Turn      string       `json:"turn,omitempty" validate:"omitempty,oneof=w b"`
	Rules     *RulesRequest `json:"rules,omitempty"`
}

// RulesRequest overrides individual rule toggles; nil fields keep the
// server default
type RulesRequest struct {
	SelfCaptureGuard  *bool `json:"selfCaptureGuard,omitempty"`
	StrictPawnAdvance *bool `json:"strictPawnAdvance,omitempty"`
	ForbidSelfCheck   *bool `json:"forbidSelfCheck,omitempty"`
}

// RulesConfig carries the rule toggles of a game
type RulesConfig struct {
	SelfCaptureGuard  bool `json:"selfCaptureGuard"`
	StrictPawnAdvance bool `json:"strictPawnAdvance"`
	ForbidSelfCheck   bool `json:"forbidSelfCheck"`
}

type SelectRequest struct {
	Square *Square `json:"square" validate:"required"`
}

type MoveRequest struct {
	From *Square `json:"from,omitempty"` // optional, selects before moving
	To   *Square `json:"to" validate:"required"`
}

// Response types

type GameResponse struct {
	GameID    string         `json:"gameId"`
	Name      string         `json:"name"`
	Placement string         `json:"placement"`
	Turn      string         `json:"turn"` // "w" or "b"
	Check     bool           `json:"check"`
	Status    string         `json:"status"` // "Check" or empty
	Plies     int            `json:"plies"`
	Selection *SelectionInfo `json:"selection,omitempty"`
	Rules     RulesConfig    `json:"rules"`
}

type SelectionInfo struct {
	Square Square   `json:"square"`
	Piece  string   `json:"piece"`
	Legal  []Square `json:"legal"`
}

type MoveInfo struct {
	From     Square `json:"from"`
	To       Square `json:"to"`
	Piece    string `json:"piece"`
	Captured string `json:"captured,omitempty"`
	Promoted bool   `json:"promoted,omitempty"`
}

type MoveResponse struct {
	Move MoveInfo     `json:"move"`
	Game GameResponse `json:"game"`
}

type BoardResponse struct {
	Placement string `json:"placement"`
	Board     string `json:"board"` // ASCII representation
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
