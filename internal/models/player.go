package models

import "time"

// Stats holds the three running point totals for a participant.
type Stats struct {
	EXP int `json:"EXP"`
	REP int `json:"cREP"`
	JCE int `json:"JCE"`
}

// RepTracker enforces the daily cap on reputation grants made by one
// participant. Counters are keyed by day and persist for the run.
type RepTracker struct {
	grants map[string]int
}

// NewRepTracker creates an empty tracker.
func NewRepTracker() *RepTracker {
	return &RepTracker{grants: make(map[string]int)}
}

// CanAward records a reputation grant attempt for the given day and reports
// whether it is within the daily cap. The first five grants of a day succeed;
// the sixth and later are denied but still counted.
func (r *RepTracker) CanAward(date time.Time) bool {
	key := DayKey(date)
	r.grants[key]++
	return r.grants[key] <= repDailyCap
}

const repDailyCap = 5

// Player is a scored community member. Created at roster sync and mutated
// only by applying actions.
type Player struct {
	Name       string      `json:"name"`
	ID         string      `json:"discordID"`
	Stats      Stats       `json:"stats"`
	RepTracker *RepTracker `json:"-"`
}

// NewPlayer creates a player with zeroed totals and a fresh rep tracker.
func NewPlayer(id, name string) *Player {
	return &Player{ID: id, Name: name, RepTracker: NewRepTracker()}
}

// AddEXP adds a non-negative experience delta. It reports false without
// mutating when the delta is negative; the caller decides how to log it.
func (p *Player) AddEXP(exp int) bool {
	if exp < 0 {
		return false
	}
	p.Stats.EXP += exp
	return true
}

// AddREP adds a reputation delta, which may be negative.
func (p *Player) AddREP(rep int) {
	p.Stats.REP += rep
}

// AddJCE adds a bonus-currency delta, which may be negative.
func (p *Player) AddJCE(jce int) {
	p.Stats.JCE += jce
}

// ResetStats zeroes the running totals ahead of a full re-aggregation.
func (p *Player) ResetStats() {
	p.Stats = Stats{}
}

// Roster is the set of known participants, looked up by external ID or
// display name. Insertion order is preserved for snapshot output.
type Roster struct {
	players []*Player
	byID    map[string]*Player
	byName  map[string]*Player
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{
		byID:   make(map[string]*Player),
		byName: make(map[string]*Player),
	}
}

// Add registers a player. Re-adding an ID is ignored.
func (r *Roster) Add(p *Player) {
	if _, ok := r.byID[p.ID]; ok {
		return
	}
	r.players = append(r.players, p)
	r.byID[p.ID] = p
	r.byName[p.Name] = p
}

// ByID returns the player with the given external ID, or nil.
func (r *Roster) ByID(id string) *Player {
	return r.byID[id]
}

// ByName returns the player with the given display name, or nil.
func (r *Roster) ByName(name string) *Player {
	return r.byName[name]
}

// Players returns all players in insertion order.
func (r *Roster) Players() []*Player {
	return r.players
}

// Len returns the number of known players.
func (r *Roster) Len() int {
	return len(r.players)
}
