package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/lineup/internal/domain/formation"
	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/internal/domain/state"
)

// CommandDependencies defines the write path for session commands.
type CommandDependencies interface {
	commandDispatcher
}

// CommandsHandler handles command requests.
type CommandsHandler struct {
	deps CommandDependencies
}

// NewCommandsHandler creates a new commands handler.
func NewCommandsHandler(deps CommandDependencies) *CommandsHandler {
	return &CommandsHandler{deps: deps}
}

// HandlePost handles POST /sessions/{id}/commands requests.
func (h *CommandsHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_command"
	var req commandRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	cmd, err := req.toCommand()
	if err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	key := strings.TrimSpace(r.Header.Get(IdempotencyHeader))
	sess, err := h.deps.Dispatch(r.Context(), r.PathValue("id"), key, cmd)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// commandRequest is the JSON envelope for every command. Type selects the
// command; only the fields that command reads may be set. Quarters and slot
// indexes are 0-based.
type commandRequest struct {
	Type         string                `json:"type"`
	Players      []model.Person        `json:"players,omitempty"`
	Player       *model.Person         `json:"player,omitempty"`
	ID           string                `json:"id,omitempty"`
	Updates      *state.PlayerPatch    `json:"updates,omitempty"`
	Quarter      *int                  `json:"quarter,omitempty"`
	Formation    string                `json:"formation,omitempty"`
	EliteQuarter *model.EliteQuarter   `json:"elite_quarter,omitempty"`
	Lineups      []model.QuarterLineup `json:"quarter_lineups,omitempty"`
	Step         *int                  `json:"step,omitempty"`
	SlotIndex    *int                  `json:"slot_index,omitempty"`
	PlayerID     string                `json:"player_id,omitempty"`
	SlotA        *int                  `json:"slot_a,omitempty"`
	SlotB        *int                  `json:"slot_b,omitempty"`
	State        *state.State          `json:"state,omitempty"`
}

var errMissingType = errors.New("missing type")

func missing(field string) error {
	return fmt.Errorf("missing %s", field)
}

func (c commandRequest) toCommand() (state.Command, error) {
	switch strings.ToLower(strings.TrimSpace(c.Type)) {
	case "":
		return nil, errMissingType
	case "set_players":
		if c.Players == nil {
			return nil, missing("players")
		}
		return state.SetPlayers{Players: c.Players}, nil
	case "add_player":
		if c.Player == nil {
			return nil, missing("player")
		}
		return state.AddPlayer{Player: *c.Player}, nil
	case "update_player":
		if c.ID == "" {
			return nil, missing("id")
		}
		if c.Updates == nil {
			return nil, missing("updates")
		}
		return state.UpdatePlayer{ID: c.ID, Patch: *c.Updates}, nil
	case "remove_player":
		if c.ID == "" {
			return nil, missing("id")
		}
		return state.RemovePlayer{ID: c.ID}, nil
	case "toggle_attendance":
		if c.ID == "" {
			return nil, missing("id")
		}
		return state.ToggleAttendance{ID: c.ID}, nil
	case "toggle_quarter":
		if c.ID == "" {
			return nil, missing("id")
		}
		if c.Quarter == nil {
			return nil, missing("quarter")
		}
		return state.ToggleQuarter{ID: c.ID, Quarter: *c.Quarter}, nil
	case "set_formation":
		if c.Formation == "" {
			return nil, missing("formation")
		}
		return state.SetFormation{Formation: formation.Name(c.Formation)}, nil
	case "set_elite_quarter":
		// Absent or null clears the elite quarter.
		q := model.NoEliteQuarter
		if c.EliteQuarter != nil {
			q = *c.EliteQuarter
		}
		return state.SetEliteQuarter{Quarter: q}, nil
	case "generate_lineups":
		return state.GenerateLineups{}, nil
	case "set_quarter_lineups":
		if c.Lineups == nil {
			return nil, missing("quarter_lineups")
		}
		return state.SetQuarterLineups{Lineups: c.Lineups}, nil
	case "set_step":
		if c.Step == nil {
			return nil, missing("step")
		}
		return state.SetStep{Step: *c.Step}, nil
	case "set_selected_quarter":
		if c.Quarter == nil {
			return nil, missing("quarter")
		}
		return state.SetSelectedQuarter{Quarter: *c.Quarter}, nil
	case "swap_player":
		if c.Quarter == nil || c.SlotIndex == nil || c.PlayerID == "" {
			return nil, missing("quarter, slot_index or player_id")
		}
		return state.SwapPlayer{Quarter: *c.Quarter, SlotIndex: *c.SlotIndex, PersonID: c.PlayerID}, nil
	case "swap_starters":
		if c.Quarter == nil || c.SlotA == nil || c.SlotB == nil {
			return nil, missing("quarter, slot_a or slot_b")
		}
		return state.SwapStarters{Quarter: *c.Quarter, SlotA: *c.SlotA, SlotB: *c.SlotB}, nil
	case "load_state":
		if c.State == nil {
			return nil, missing("state")
		}
		return state.LoadState{State: *c.State}, nil
	}
	return nil, fmt.Errorf("unknown command type %q", c.Type)
}
