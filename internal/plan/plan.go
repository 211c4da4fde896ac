// Package plan reads a building plan (floors, rooms, stairs) from YAML so the
// calculator can run without the web UI.
package plan

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/cmtegi-hash/square-foot-calculator-clean/internal/business/calculator"
	"github.com/cmtegi-hash/square-foot-calculator-clean/pkg/model"
)

// File is the on-disk shape of a plan.
//
//	floors: [Basement, Floor 1, Floor 2]
//	rooms:
//	  - {name: Kitchen, floor: Floor 1, width: 10, length: 12}
//	  - {name: Garage, floor: Floor 1, width: 20, length: 20, include: false}
//	stairs:
//	  - {from: Floor 1, to: Floor 2, steps: 14, landing: {width: 3, length: 4}}
type File struct {
	Floors []string     `yaml:"floors,omitempty"`
	Rooms  []RoomEntry  `yaml:"rooms"`
	Stairs []StairEntry `yaml:"stairs"`
}

type RoomEntry struct {
	Name    string  `yaml:"name"`
	Floor   string  `yaml:"floor"`
	Width   float64 `yaml:"width"`
	Length  float64 `yaml:"length"`
	Include *bool   `yaml:"include,omitempty"`
}

type StairEntry struct {
	From    string   `yaml:"from"`
	To      string   `yaml:"to"`
	Steps   int      `yaml:"steps"`
	Landing *Landing `yaml:"landing,omitempty"`
}

type Landing struct {
	Width  float64 `yaml:"width"`
	Length float64 `yaml:"length"`
}

// Plan is a validated set of inputs ready for calculator.Calculate.
type Plan struct {
	Floors model.FloorSet
	Rooms  []model.Room
	Stairs []model.Stair
}

// Report runs the calculator over the plan.
func (p Plan) Report() model.Report {
	return calculator.Calculate(p.Rooms, p.Stairs, p.Floors)
}

// Load reads and validates a plan file. floors overrides the file's own
// floor list when non-empty.
func Load(path string, floors model.FloorSet) (Plan, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Plan{}, fmt.Errorf("open plan: %w", err)
	}
	defer fh.Close()
	return Decode(fh, floors)
}

// Decode parses YAML from r. Every entry goes through the same form parsing
// the web UI uses, so the rules are identical.
func Decode(r io.Reader, floors model.FloorSet) (Plan, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Plan{}, fmt.Errorf("decode plan: %w", err)
	}

	if len(floors) == 0 {
		floors = model.FloorSet(f.Floors)
	}
	if len(floors) == 0 {
		floors = model.DefaultFloors
	}

	p := Plan{
		Floors: floors,
		Rooms:  make([]model.Room, 0, len(f.Rooms)),
		Stairs: make([]model.Stair, 0, len(f.Stairs)),
	}

	for i, e := range f.Rooms {
		include := true
		if e.Include != nil {
			include = *e.Include
		}
		room, err := calculator.ParseRoomForm(calculator.RoomForm{
			Name:    e.Name,
			Floor:   e.Floor,
			Width:   calculator.FormatNumber(e.Width),
			Length:  calculator.FormatNumber(e.Length),
			Include: include,
		}, floors)
		if err != nil {
			return Plan{}, fmt.Errorf("rooms[%d]: %w", i, err)
		}
		room.ID = "room-" + strconv.Itoa(i+1)
		p.Rooms = append(p.Rooms, room)
	}

	for i, e := range f.Stairs {
		form := calculator.StairForm{
			From:  e.From,
			To:    e.To,
			Steps: strconv.Itoa(e.Steps),
		}
		if e.Landing != nil {
			form.HasLanding = true
			form.LandingWidth = calculator.FormatNumber(e.Landing.Width)
			form.LandingLength = calculator.FormatNumber(e.Landing.Length)
		}
		stair, err := calculator.ParseStairForm(form, floors)
		if err != nil {
			return Plan{}, fmt.Errorf("stairs[%d]: %w", i, err)
		}
		stair.ID = "stair-" + strconv.Itoa(i+1)
		p.Stairs = append(p.Stairs, stair)
	}

	return p, nil
}
