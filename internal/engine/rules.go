package engine

import "chessrules/internal/core"

// Rules holds the switches for the rule gaps that have more than one sensible
// reading.
type Rules struct {
	// SelfCaptureGuard rejects moves onto a square held by a piece of the
	// mover's own color.
	SelfCaptureGuard bool
	// StrictPawnAdvance requires the destination of a straight pawn advance,
	// and the skipped square of a double step, to be empty. Off, a pawn may
	// advance onto or through any piece the other guards allow.
	StrictPawnAdvance bool
	// ForbidSelfCheck filters out moves that leave the mover's king attacked.
	ForbidSelfCheck bool
}

// DefaultRules reproduces the classic behavior of the game: self-capture is
// refused, pawn advances are not blocked, and self-check is allowed.
func DefaultRules() Rules {
	return Rules{SelfCaptureGuard: true}
}

// StandardRules is the stricter set closest to regular chess
func StandardRules() Rules {
	return Rules{
		SelfCaptureGuard:  true,
		StrictPawnAdvance: true,
		ForbidSelfCheck:   true,
	}
}

// Override returns r with the toggles set in req replaced
func (r Rules) Override(req core.RulesRequest) Rules {
	if req.SelfCaptureGuard != nil {
		r.SelfCaptureGuard = *req.SelfCaptureGuard
	}
	if req.StrictPawnAdvance != nil {
		r.StrictPawnAdvance = *req.StrictPawnAdvance
	}
	if req.ForbidSelfCheck != nil {
		r.ForbidSelfCheck = *req.ForbidSelfCheck
	}
	return r
}

func (r Rules) Config() core.RulesConfig {
	return core.RulesConfig{
		SelfCaptureGuard:  r.SelfCaptureGuard,
		StrictPawnAdvance: r.StrictPawnAdvance,
		ForbidSelfCheck:   r.ForbidSelfCheck,
	}
}
