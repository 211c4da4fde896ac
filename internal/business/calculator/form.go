package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cmtegi-hash/square-foot-calculator-clean/pkg/model"
	"github.com/cmtegi-hash/square-foot-calculator-clean/pkg/util"
)

var (
	ErrEmptyName         = errors.New("room name cannot be empty")
	ErrInvalidDimensions = errors.New("width and length must be numbers")
	ErrInvalidStair      = errors.New("steps must be integer and landing dimensions must be numbers")
	ErrUnknownFloor      = errors.New("unknown floor")
)

// MaxArea and MaxSteps bound a single row so totals stay far from int overflow.
const (
	MaxArea  = math.MaxInt32
	MaxSteps = math.MaxInt32
)

// RoomForm is the raw text a user typed for one room.
type RoomForm struct {
	Name    string
	Floor   string
	Width   string
	Length  string
	Include bool
}

// StairForm is the raw text a user typed for one stair run.
type StairForm struct {
	From          string
	To            string
	Steps         string
	HasLanding    bool
	LandingWidth  string
	LandingLength string
}

// ParseRoomForm validates a room form and returns the room with its area filled in.
func ParseRoomForm(f RoomForm, floors model.FloorSet) (model.Room, error) {
	name := util.NormalizeName(f.Name)
	if name == "" {
		return model.Room{}, ErrEmptyName
	}
	width, err := parseNumber(f.Width)
	if err != nil {
		return model.Room{}, fmt.Errorf("%w: width %q", ErrInvalidDimensions, f.Width)
	}
	length, err := parseNumber(f.Length)
	if err != nil {
		return model.Room{}, fmt.Errorf("%w: length %q", ErrInvalidDimensions, f.Length)
	}
	if !withinArea(width * length) {
		return model.Room{}, fmt.Errorf("%w: area %s x %s is too large", ErrInvalidDimensions, f.Width, f.Length)
	}
	floor := strings.TrimSpace(f.Floor)
	if !floors.Contains(floor) {
		return model.Room{}, fmt.Errorf("%w: %q", ErrUnknownFloor, floor)
	}

	room := model.Room{
		Name:    name,
		Floor:   floor,
		Width:   width,
		Length:  length,
		Include: f.Include,
	}
	room.Area = RoomArea(room)
	return room, nil
}

// ParseStairForm validates a stair form. Landing dimensions are only read
// when HasLanding is set; otherwise the landing area is zero.
func ParseStairForm(f StairForm, floors model.FloorSet) (model.Stair, error) {
	steps, err := strconv.Atoi(strings.TrimSpace(f.Steps))
	if err != nil {
		return model.Stair{}, fmt.Errorf("%w: steps %q", ErrInvalidStair, f.Steps)
	}
	if steps > MaxSteps || steps < -MaxSteps {
		return model.Stair{}, fmt.Errorf("%w: steps %q is too large", ErrInvalidStair, f.Steps)
	}

	landing := 0
	if f.HasLanding {
		lw, err := parseNumber(f.LandingWidth)
		if err != nil {
			return model.Stair{}, fmt.Errorf("%w: landing width %q", ErrInvalidStair, f.LandingWidth)
		}
		ll, err := parseNumber(f.LandingLength)
		if err != nil {
			return model.Stair{}, fmt.Errorf("%w: landing length %q", ErrInvalidStair, f.LandingLength)
		}
		if !withinArea(lw * ll) {
			return model.Stair{}, fmt.Errorf("%w: landing %s x %s is too large", ErrInvalidStair, f.LandingWidth, f.LandingLength)
		}
		landing = RoundArea(lw * ll)
	}

	from, to := strings.TrimSpace(f.From), strings.TrimSpace(f.To)
	for _, fl := range []string{from, to} {
		if !floors.Contains(fl) {
			return model.Stair{}, fmt.Errorf("%w: %q", ErrUnknownFloor, fl)
		}
	}

	return model.Stair{
		From:        from,
		To:          to,
		Steps:       steps,
		LandingArea: landing,
	}, nil
}

// parseNumber accepts anything strconv reads as a finite float.
func parseNumber(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", raw)
	}
	return v, nil
}

func withinArea(sqft float64) bool {
	return math.Abs(sqft) <= MaxArea
}

// FormatNumber renders a dimension back into form text without trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
