package model

import "strings"

// DefaultFloors is the building level order used when nothing else is configured.
var DefaultFloors = FloorSet{"Basement", "Floor 1", "Floor 2", "Floor 3"}

// FloorSet is an ordered list of floor names. Position drives grouping and display order.
type FloorSet []string

// Index returns the position of floor in the set, or len(fs) for unknown floors so they sort last.
func (fs FloorSet) Index(floor string) int {
	for i, f := range fs {
		if f == floor {
			return i
		}
	}
	return len(fs)
}

// Contains reports whether floor is part of the set.
func (fs FloorSet) Contains(floor string) bool {
	return fs.Index(floor) < len(fs)
}

// First returns the lowest floor, or "" for an empty set.
func (fs FloorSet) First() string {
	if len(fs) == 0 {
		return ""
	}
	return fs[0]
}

// ParseFloorSet splits a comma separated floor list, dropping blanks.
func ParseFloorSet(raw string) FloorSet {
	parts := strings.Split(raw, ",")
	out := make(FloorSet, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Room is one measured room section on a floor.
type Room struct {
	ID      string  `json:"id,omitempty"`
	Name    string  `json:"name"`
	Floor   string  `json:"floor"`
	Width   float64 `json:"width"`
	Length  float64 `json:"length"`
	Include bool    `json:"include"`
	Area    int     `json:"area"` // derived from Width*Length, recomputed on every change
}

// Stair is a run of steps between two floors with an optional landing.
type Stair struct {
	ID          string `json:"id,omitempty"`
	From        string `json:"from"`
	To          string `json:"to"`
	Steps       int    `json:"steps"`
	LandingArea int    `json:"landingArea"`
}

// Name renders the stair as "{from} → {to}".
func (s Stair) Name() string {
	return s.From + " → " + s.To
}

// RoomGroup is the summed area of all included rooms sharing a floor and name.
type RoomGroup struct {
	Floor string `json:"floor"`
	Name  string `json:"name"`
	Area  int    `json:"area"`
}

// RoomTotals is the reduced view of a room list.
type RoomTotals struct {
	TotalArea int         `json:"totalArea"`
	Grouped   []RoomGroup `json:"grouped"`
}

// StairTotals is the reduced view of a stair list.
type StairTotals struct {
	TotalSteps   int     `json:"totalSteps"`
	TotalLanding int     `json:"totalLanding"`
	Ordered      []Stair `json:"ordered"`
}

// Report is everything the presentation layer needs to display for one set of rooms and stairs.
type Report struct {
	GrandTotalArea     int         `json:"grandTotalArea"`
	StairsStepsTotal   int         `json:"stairsStepsTotal"`
	RoomAreaTotal      int         `json:"roomAreaTotal"`
	StairsLandingTotal int         `json:"stairsLandingTotal"`
	Rooms              RoomTotals  `json:"rooms"`
	Stairs             StairTotals `json:"stairs"`
	Summary            string      `json:"summary"`
}
