package models

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Profile names the strategy that produced a pick
type Profile string

const (
	ProfileZeus  Profile = "ZEUS"
	ProfileShiva Profile = "SHIVA"
	ProfileLoki  Profile = "LOKI"
)

// Profiles lists every canonical profile in reporting order
var Profiles = []Profile{ProfileZeus, ProfileLoki, ProfileShiva}

// PickType represents the market a pick is placed on
type PickType string

const (
	PickTypeSpread    PickType = "SPREAD"
	PickTypeTotal     PickType = "TOTAL"
	PickTypeMoneyline PickType = "MONEYLINE"
)

// PickSide is the selection within the market
type PickSide string

const (
	PickSideHome  PickSide = "HOME"
	PickSideAway  PickSide = "AWAY"
	PickSideOver  PickSide = "OVER"
	PickSideUnder PickSide = "UNDER"
)

// PickStatus represents the lifecycle state of a pick
type PickStatus string

const (
	PickStatusPending PickStatus = "PENDING"
	PickStatusWin     PickStatus = "WIN"
	PickStatusLoss    PickStatus = "LOSS"
	PickStatusPush    PickStatus = "PUSH"
)

// Pick is a persisted recommendation. Side and Line are the source of truth
// for grading; Details is only a rendered label.
type Pick struct {
	ID          uuid.UUID  `db:"id" json:"id" validate:"required"`
	Profile     Profile    `db:"profile" json:"profile" validate:"required,oneof=ZEUS SHIVA LOKI"`
	Sport       string     `db:"sport" json:"sport" validate:"required"`
	MatchDate   time.Time  `db:"match_date" json:"match_date" validate:"required"`
	Matchup     string     `db:"matchup" json:"matchup" validate:"required"`
	HomeTeam    string     `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam    string     `db:"away_team" json:"away_team" validate:"required"`
	Type        PickType   `db:"pick_type" json:"pick_type" validate:"required,oneof=SPREAD TOTAL MONEYLINE"`
	Side        PickSide   `db:"side" json:"side" validate:"required,oneof=HOME AWAY OVER UNDER"`
	Line        float64    `db:"line" json:"line"`
	Details     string     `db:"details" json:"details"`
	Odds        float64    `db:"odds" json:"odds" validate:"required"`
	Edge        float64    `db:"edge" json:"edge" validate:"gte=0"`
	Status      PickStatus `db:"status" json:"status" validate:"required,oneof=PENDING WIN LOSS PUSH"`
	Profit      *float64   `db:"profit" json:"profit"`
	ResultScore *string    `db:"result_score" json:"result_score"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// PickUpdate carries the fields a rescan may move on a pending pick
type PickUpdate struct {
	Type    PickType
	Side    PickSide
	Line    float64
	Details string
	Odds    float64
	Edge    float64
}

// PickGrade carries the terminal fields written by settlement
type PickGrade struct {
	Status      PickStatus
	Profit      float64
	ResultScore string
}

// PickFilter narrows FindAll queries. Zero values are ignored.
type PickFilter struct {
	Profile  Profile
	Statuses []PickStatus
	From     *time.Time
	To       *time.Time
}

// MatchupLabel formats the canonical "Away @ Home" label
func MatchupLabel(away, home string) string {
	return away + " @ " + home
}

// IsTerminal checks if the pick has been graded
func (p *Pick) IsTerminal() bool {
	return p.Status != PickStatusPending
}

// PickedTeam returns the team name for HOME/AWAY picks
func (p *Pick) PickedTeam() string {
	if p.Side == PickSideAway {
		return p.AwayTeam
	}
	return p.HomeTeam
}

// RenderDetails builds the display label from the structured fields
func (p *Pick) RenderDetails() string {
	switch p.Type {
	case PickTypeSpread:
		line := formatLine(p.Line)
		if p.Line > 0 {
			line = "+" + line
		}
		return p.PickedTeam() + " " + line
	case PickTypeTotal:
		return string(p.Side) + " " + formatLine(p.Line)
	case PickTypeMoneyline:
		return p.PickedTeam() + " ML"
	}
	return ""
}

func formatLine(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
