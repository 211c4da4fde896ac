package calculator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cmtegi-hash/square-foot-calculator-clean/pkg/model"
	"github.com/google/uuid"
)

var ErrRowNotFound = errors.New("row not found")

// State is everything one user session has entered so far.
type State struct {
	Floors      model.FloorSet `json:"floors"`
	ActiveFloor string         `json:"activeFloor"`
	Rooms       []model.Room   `json:"rooms"`
	Stairs      []model.Stair  `json:"stairs"`
}

// NewState returns an empty session positioned on the lowest floor.
func NewState(floors model.FloorSet) State {
	return State{
		Floors:      floors,
		ActiveFloor: floors.First(),
		Rooms:       []model.Room{},
		Stairs:      []model.Stair{},
	}
}

// Report aggregates the current rooms and stairs.
func (s State) Report() model.Report {
	return Calculate(s.Rooms, s.Stairs, s.Floors)
}

func (s State) clone() State {
	out := s
	out.Rooms = append([]model.Room(nil), s.Rooms...)
	out.Stairs = append([]model.Stair(nil), s.Stairs...)
	if out.Rooms == nil {
		out.Rooms = []model.Room{}
	}
	if out.Stairs == nil {
		out.Stairs = []model.Stair{}
	}
	return out
}

// Command is a single user action against a session.
type Command interface {
	apply(State) (State, error)
}

// Apply returns the state that results from cmd. The input state is never
// modified; on error the caller keeps its previous snapshot.
func Apply(s State, cmd Command) (State, error) {
	return cmd.apply(s.clone())
}

// SetActiveFloor changes the floor new rooms are added to.
type SetActiveFloor struct {
	Floor string
}

func (c SetActiveFloor) apply(s State) (State, error) {
	floor := strings.TrimSpace(c.Floor)
	if !s.Floors.Contains(floor) {
		return s, fmt.Errorf("%w: %q", ErrUnknownFloor, floor)
	}
	s.ActiveFloor = floor
	return s, nil
}

// AddRoom appends a room. An empty Form.Floor means the active floor.
type AddRoom struct {
	ID   string
	Form RoomForm
}

func (c AddRoom) apply(s State) (State, error) {
	form := c.Form
	if strings.TrimSpace(form.Floor) == "" {
		form.Floor = s.ActiveFloor
	}
	room, err := ParseRoomForm(form, s.Floors)
	if err != nil {
		return s, err
	}
	room.ID = c.ID
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	s.Rooms = append(s.Rooms, room)
	return s, nil
}

// AddStair appends a stair run.
type AddStair struct {
	ID   string
	Form StairForm
}

func (c AddStair) apply(s State) (State, error) {
	stair, err := ParseStairForm(c.Form, s.Floors)
	if err != nil {
		return s, err
	}
	stair.ID = c.ID
	if stair.ID == "" {
		stair.ID = uuid.NewString()
	}
	s.Stairs = append(s.Stairs, stair)
	return s, nil
}

// EditRoom replaces the non-nil fields of an existing room and recomputes its area.
type EditRoom struct {
	ID      string
	Name    *string
	Floor   *string
	Width   *string
	Length  *string
	Include *bool
}

func (c EditRoom) apply(s State) (State, error) {
	idx := indexOfRoom(s.Rooms, c.ID)
	if idx < 0 {
		return s, fmt.Errorf("room %s: %w", c.ID, ErrRowNotFound)
	}
	cur := s.Rooms[idx]
	form := RoomForm{
		Name:    pick(c.Name, cur.Name),
		Floor:   pick(c.Floor, cur.Floor),
		Width:   pick(c.Width, FormatNumber(cur.Width)),
		Length:  pick(c.Length, FormatNumber(cur.Length)),
		Include: cur.Include,
	}
	if c.Include != nil {
		form.Include = *c.Include
	}
	room, err := ParseRoomForm(form, s.Floors)
	if err != nil {
		return s, err
	}
	room.ID = cur.ID
	s.Rooms[idx] = room
	return s, nil
}

// EditStair replaces the non-nil fields of an existing stair. The landing
// area is edited directly as a number, the way it is shown.
type EditStair struct {
	ID          string
	From        *string
	To          *string
	Steps       *string
	LandingArea *string
}

func (c EditStair) apply(s State) (State, error) {
	idx := indexOfStair(s.Stairs, c.ID)
	if idx < 0 {
		return s, fmt.Errorf("stair %s: %w", c.ID, ErrRowNotFound)
	}
	cur := s.Stairs[idx]
	stair, err := ParseStairForm(StairForm{
		From:  pick(c.From, cur.From),
		To:    pick(c.To, cur.To),
		Steps: pick(c.Steps, strconv.Itoa(cur.Steps)),
	}, s.Floors)
	if err != nil {
		return s, err
	}
	stair.LandingArea = cur.LandingArea
	if c.LandingArea != nil {
		v, err := parseNumber(*c.LandingArea)
		if err != nil || !withinArea(v) {
			return s, fmt.Errorf("%w: landing area %q", ErrInvalidStair, *c.LandingArea)
		}
		stair.LandingArea = RoundArea(v)
	}
	stair.ID = cur.ID
	s.Stairs[idx] = stair
	return s, nil
}

// DeleteRoom removes one room by id.
type DeleteRoom struct {
	ID string
}

func (c DeleteRoom) apply(s State) (State, error) {
	idx := indexOfRoom(s.Rooms, c.ID)
	if idx < 0 {
		return s, fmt.Errorf("room %s: %w", c.ID, ErrRowNotFound)
	}
	s.Rooms = append(s.Rooms[:idx], s.Rooms[idx+1:]...)
	return s, nil
}

// DeleteStair removes one stair by id.
type DeleteStair struct {
	ID string
}

func (c DeleteStair) apply(s State) (State, error) {
	idx := indexOfStair(s.Stairs, c.ID)
	if idx < 0 {
		return s, fmt.Errorf("stair %s: %w", c.ID, ErrRowNotFound)
	}
	s.Stairs = append(s.Stairs[:idx], s.Stairs[idx+1:]...)
	return s, nil
}

// RemoveExcluded drops every room whose include flag is off.
type RemoveExcluded struct{}

func (RemoveExcluded) apply(s State) (State, error) {
	kept := s.Rooms[:0]
	for _, r := range s.Rooms {
		if r.Include {
			kept = append(kept, r)
		}
	}
	s.Rooms = kept
	return s, nil
}

func indexOfRoom(rooms []model.Room, id string) int {
	for i, r := range rooms {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func indexOfStair(stairs []model.Stair, id string) int {
	for i, st := range stairs {
		if st.ID == id {
			return i
		}
	}
	return -1
}

func pick(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}
