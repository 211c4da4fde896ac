package http

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/cmtegi-hash/square-foot-calculator-clean/internal/business/calculator"
)

// formValue is a text input that clients may send as a JSON string or number.
// Parsing into numbers happens in the calculator so error messages stay uniform.
type formValue string

func (v *formValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = formValue(s)
		return nil
	}
	*v = formValue(strings.TrimSpace(string(data)))
	return nil
}

func (v *formValue) ptr() *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

type roomReq struct {
	Name    string    `json:"name"`
	Floor   string    `json:"floor"`
	Width   formValue `json:"width"`
	Length  formValue `json:"length"`
	Include *bool     `json:"include"` // defaults to true
}

func (r roomReq) form() calculator.RoomForm {
	include := true
	if r.Include != nil {
		include = *r.Include
	}
	return calculator.RoomForm{
		Name:    r.Name,
		Floor:   r.Floor,
		Width:   string(r.Width),
		Length:  string(r.Length),
		Include: include,
	}
}

type stairReq struct {
	From          string    `json:"from"`
	To            string    `json:"to"`
	Steps         formValue `json:"steps"`
	HasLanding    bool      `json:"hasLanding"`
	LandingWidth  formValue `json:"landingWidth"`
	LandingLength formValue `json:"landingLength"`
}

func (r stairReq) form() calculator.StairForm {
	return calculator.StairForm{
		From:          r.From,
		To:            r.To,
		Steps:         string(r.Steps),
		HasLanding:    r.HasLanding,
		LandingWidth:  string(r.LandingWidth),
		LandingLength: string(r.LandingLength),
	}
}

type roomPatchReq struct {
	Name    *string    `json:"name"`
	Floor   *string    `json:"floor"`
	Width   *formValue `json:"width"`
	Length  *formValue `json:"length"`
	Include *bool      `json:"include"`
}

type stairPatchReq struct {
	From        *string    `json:"from"`
	To          *string    `json:"to"`
	Steps       *formValue `json:"steps"`
	LandingArea *formValue `json:"landingArea"`
}

type activeFloorReq struct {
	Floor string `json:"floor"`
}

type calculateReq struct {
	Rooms  []roomReq  `json:"rooms"`
	Stairs []stairReq `json:"stairs"`
}
