package state

import (
	"github.com/okian/lineup/internal/domain/formation"
	"github.com/okian/lineup/internal/domain/model"
)

// Command is one of the state transitions defined in this package. The set is
// closed: the unexported method keeps other packages from adding variants.
type Command interface {
	// Name is a stable snake_case label used for logs and metrics.
	Name() string
	apply(r *Reducer, s State) (Outcome, error)
}

// SetPlayers replaces the whole roster.
type SetPlayers struct{ Players []model.Person }

// AddPlayer appends one person to the roster.
type AddPlayer struct{ Player model.Person }

// PlayerPatch lists the fields UpdatePlayer may change. Nil fields are kept.
type PlayerPatch struct {
	Name        *string      `json:"name,omitempty"`
	Number      *int         `json:"number,omitempty"`
	ClearNumber bool         `json:"clear_number,omitempty"`
	Primary     *model.Role  `json:"main_pos,omitempty"`
	Secondary   *model.Role  `json:"sub_pos,omitempty"`
	Skill       *model.Skill `json:"skill_level,omitempty"`
	Guest       *bool        `json:"is_mercenary,omitempty"`
}

// UpdatePlayer edits one roster entry.
type UpdatePlayer struct {
	ID    string
	Patch PlayerPatch
}

// RemovePlayer drops one roster entry.
type RemovePlayer struct{ ID string }

// ToggleAttendance flips a person's participation.
type ToggleAttendance struct{ ID string }

// ToggleQuarter flips a person's availability for one quarter (0-based).
type ToggleQuarter struct {
	ID      string
	Quarter int
}

// SetFormation selects a catalog template.
type SetFormation struct{ Formation formation.Name }

// SetEliteQuarter designates the skill-first quarter, or clears it.
type SetEliteQuarter struct{ Quarter model.EliteQuarter }

// GenerateLineups schedules all four quarters from the current roster.
type GenerateLineups struct{}

// SetQuarterLineups replaces the lineups wholesale.
type SetQuarterLineups struct{ Lineups []model.QuarterLineup }

// SetStep moves the wizard to a step.
type SetStep struct{ Step int }

// SetSelectedQuarter selects the quarter shown on the pitch (0-based).
type SetSelectedQuarter struct{ Quarter int }

// SwapPlayer puts PersonID into a starter slot of one quarter (0-based).
type SwapPlayer struct {
	Quarter   int
	SlotIndex int
	PersonID  string
}

// SwapStarters exchanges the occupants of two starter slots of one quarter.
type SwapStarters struct {
	Quarter int
	SlotA   int
	SlotB   int
}

// LoadState replaces the whole state, e.g. from a stored record.
type LoadState struct{ State State }

func (SetPlayers) Name() string         { return "set_players" }
func (AddPlayer) Name() string          { return "add_player" }
func (UpdatePlayer) Name() string       { return "update_player" }
func (RemovePlayer) Name() string       { return "remove_player" }
func (ToggleAttendance) Name() string   { return "toggle_attendance" }
func (ToggleQuarter) Name() string      { return "toggle_quarter" }
func (SetFormation) Name() string       { return "set_formation" }
func (SetEliteQuarter) Name() string    { return "set_elite_quarter" }
func (GenerateLineups) Name() string    { return "generate_lineups" }
func (SetQuarterLineups) Name() string  { return "set_quarter_lineups" }
func (SetStep) Name() string            { return "set_step" }
func (SetSelectedQuarter) Name() string { return "set_selected_quarter" }
func (SwapPlayer) Name() string         { return "swap_player" }
func (SwapStarters) Name() string       { return "swap_starters" }
func (LoadState) Name() string          { return "load_state" }
