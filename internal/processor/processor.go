package processor

import (
	"errors"
	"log"
	"strings"
	"unicode"

	"chessrules/internal/core"
	"chessrules/internal/engine"
	"chessrules/internal/service"
)

// Processor turns transport commands into service calls and builds the API
// views of the results
type Processor struct {
	svc          *service.Service
	defaultRules engine.Rules
}

// New creates a processor. defaultRules apply to games created without an
// explicit rules block.
func New(svc *service.Service, defaultRules engine.Rules) *Processor {
	return &Processor{
		svc:          svc,
		defaultRules: defaultRules,
	}
}

func (p *Processor) Execute(cmd Command) ProcessorResponse {
	switch cmd.Type {
	case CmdCreateGame:
		return p.handleCreateGame(cmd)
	case CmdGetGame:
		return p.handleGetGame(cmd)
	case CmdDeleteGame:
		return p.handleDeleteGame(cmd)
	case CmdSelect:
		return p.handleSelect(cmd)
	case CmdDeselect:
		return p.handleDeselect(cmd)
	case CmdMakeMove:
		return p.handleMakeMove(cmd)
	case CmdGetBoard:
		return p.handleGetBoard(cmd)
	default:
		return p.errorResponse("unknown command", core.ErrCodeInvalidRequest, "")
	}
}

// isPlacementSafe rejects control characters and anything outside the
// placement alphabet before the board parser sees it
func isPlacementSafe(placement string) bool {
	for _, r := range placement {
		if unicode.IsControl(r) {
			return false
		}
		if !strings.ContainsRune("prnbqkPRNBQK12345678/", r) {
			return false
		}
	}
	return true
}

func (p *Processor) handleCreateGame(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.CreateGameRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrCodeInvalidRequest, "")
	}

	if strings.IndexFunc(args.Placement, unicode.IsControl) >= 0 {
		return p.errorResponse("invalid placement characters", core.ErrCodeInvalidPlacement, "")
	}

	// a full FEN is accepted: its side-to-move field is a fallback for turn,
	// the remaining fields are ignored
	placement := args.Placement
	if fields := strings.Fields(placement); len(fields) > 0 {
		placement = fields[0]
		if args.Turn == "" && len(fields) > 1 {
			args.Turn = fields[1]
		}
	}
	if placement != "" && !isPlacementSafe(placement) {
		return p.errorResponse("invalid placement characters", core.ErrCodeInvalidPlacement, "")
	}

	turn := core.ColorWhite
	if args.Turn != "" {
		c, ok := core.ParseColor(args.Turn)
		if !ok {
			return p.errorResponse("invalid turn", core.ErrCodeInvalidRequest, args.Turn)
		}
		turn = c
	}

	rules := p.defaultRules
	if args.Rules != nil {
		rules = rules.Override(*args.Rules)
	}

	snap, err := p.svc.CreateGame(placement, turn, rules)
	if err != nil {
		return p.domainError("failed to create game", err)
	}

	log.Printf("game %s (%s) created", snap.GameID, snap.Name)
	return ProcessorResponse{
		Success: true,
		Data:    buildGameResponse(snap),
	}
}

func (p *Processor) handleGetGame(cmd Command) ProcessorResponse {
	snap, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.domainError("game not found", err)
	}
	return ProcessorResponse{
		Success: true,
		Data:    buildGameResponse(snap),
	}
}

func (p *Processor) handleDeleteGame(cmd Command) ProcessorResponse {
	if err := p.svc.DeleteGame(cmd.GameID); err != nil {
		return p.domainError("game not found", err)
	}
	return ProcessorResponse{Success: true}
}

func (p *Processor) handleSelect(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.SelectRequest)
	if !ok || args.Square == nil {
		return p.errorResponse("invalid arguments", core.ErrCodeInvalidRequest, "")
	}

	_, snap, err := p.svc.Select(cmd.GameID, *args.Square)
	if err != nil {
		return p.domainError("cannot select "+args.Square.String(), err)
	}
	return ProcessorResponse{
		Success: true,
		Data:    buildGameResponse(snap),
	}
}

func (p *Processor) handleDeselect(cmd Command) ProcessorResponse {
	snap, err := p.svc.Deselect(cmd.GameID)
	if err != nil {
		return p.domainError("game not found", err)
	}
	return ProcessorResponse{
		Success: true,
		Data:    buildGameResponse(snap),
	}
}

func (p *Processor) handleMakeMove(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.MoveRequest)
	if !ok || args.To == nil {
		return p.errorResponse("invalid arguments", core.ErrCodeInvalidRequest, "")
	}

	res, snap, err := p.svc.Move(cmd.GameID, args.From, *args.To)
	if err != nil {
		return p.domainError("move rejected", err)
	}

	return ProcessorResponse{
		Success: true,
		Data: core.MoveResponse{
			Move: core.MoveInfo{
				From:     res.From,
				To:       res.To,
				Piece:    res.Piece.SymbolString(),
				Captured: res.Captured.SymbolString(),
				Promoted: res.Promoted,
			},
			Game: buildGameResponse(snap),
		},
	}
}

func (p *Processor) handleGetBoard(cmd Command) ProcessorResponse {
	snap, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.domainError("game not found", err)
	}

	b := snap.Board
	return ProcessorResponse{
		Success: true,
		Data: core.BoardResponse{
			Placement: b.Placement(),
			Board:     b.ToASCII(),
		},
	}
}

func buildGameResponse(snap service.Snapshot) core.GameResponse {
	resp := core.GameResponse{
		GameID:    snap.GameID,
		Name:      snap.Name,
		Placement: snap.Board.Placement(),
		Turn:      snap.Turn.String(),
		Check:     snap.Check,
		Status:    core.CheckStatus(snap.Check),
		Plies:     snap.Plies,
		Rules:     snap.Rules.Config(),
	}

	if sel := snap.Selection; sel != nil {
		legal := sel.Legal
		if legal == nil {
			legal = []core.Square{}
		}
		resp.Selection = &core.SelectionInfo{
			Square: sel.Square,
			Piece:  sel.Piece.SymbolString(),
			Legal:  legal,
		}
	}

	return resp
}

// domainError reports err under its API code, with the reason as details
func (p *Processor) domainError(message string, err error) ProcessorResponse {
	code := core.ErrorCode(err)
	if code == core.ErrCodeInternalError {
		log.Printf("processor: %s: %v", message, err)
	}
	details := err.Error()
	if errors.Is(err, core.ErrGameNotFound) {
		details = ""
	}
	return p.errorResponse(message, code, details)
}

func (p *Processor) errorResponse(message, code, details string) ProcessorResponse {
	return ProcessorResponse{
		Success: false,
		Error: &core.ErrorResponse{
			Error:   message,
			Code:    code,
			Details: details,
		},
	}
}
