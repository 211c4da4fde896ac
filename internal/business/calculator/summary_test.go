package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmtegi-hash/square-foot-calculator-clean/pkg/model"
)

func TestCalculate_KitchenOnly(t *testing.T) {
	report := Calculate([]model.Room{room("Kitchen", "Floor 1", 10, 12, true)}, nil, model.DefaultFloors)

	assert.Equal(t, 120, report.RoomAreaTotal)
	assert.Equal(t, 120, report.GrandTotalArea)
	assert.Equal(t, 0, report.StairsStepsTotal)
	assert.Contains(t, report.Summary, "Total Area: 120 ft²")
	assert.Contains(t, report.Summary, "Floor 1:")
	assert.Contains(t, report.Summary, "Kitchen: 120 ft²")
	assert.NotContains(t, report.Summary, "Stairs:")
}

func TestCalculate_StairWithLanding(t *testing.T) {
	stair, err := ParseStairForm(StairForm{
		From: "Floor 1", To: "Floor 2", Steps: "14",
		HasLanding: true, LandingWidth: "3", LandingLength: "4",
	}, model.DefaultFloors)
	require.NoError(t, err)

	report := Calculate(nil, []model.Stair{stair}, model.DefaultFloors)

	assert.Equal(t, 12, report.StairsLandingTotal)
	assert.Equal(t, 12, report.GrandTotalArea)
	assert.Equal(t, 14, report.StairsStepsTotal)
	assert.Contains(t, report.Summary, "Floor 1 → Floor 2: 14 steps, landing 12 ft²")
	assert.Contains(t, report.Summary, "Total landing area: 12 ft²")
}

func TestCalculate_GroupedBath(t *testing.T) {
	report := Calculate([]model.Room{
		room("Bath", "Basement", 5, 5, true),
		room("Bath", "Basement", 4, 4, true),
	}, nil, model.DefaultFloors)

	assert.Equal(t, "Total Area: 41 ft²\nTotal Steps: 0\n\nBasement:\nBath: 41 ft²", report.Summary)
}

func TestFormatSummary_FullLayout(t *testing.T) {
	rooms := []model.Room{
		room("living room", "Floor 1", 15, 20, true),
		room("kitchen", "Floor 1", 10, 12, true),
		room("Storage", "Basement", 10, 10, true),
		room("garage", "Floor 1", 20, 20, false),
	}
	stairs := []model.Stair{
		{From: "Floor 1", To: "Floor 2", Steps: 14, LandingArea: 12},
		{From: "Basement", To: "Floor 1", Steps: 12},
	}

	got := Calculate(rooms, stairs, model.DefaultFloors).Summary

	want := "Total Area: 532 ft²\n" +
		"Total Steps: 26\n" +
		"\n" +
		"Basement:\n" +
		"Storage: 100 ft²\n" +
		"\n" +
		"Floor 1:\n" +
		"Kitchen: 120 ft²\n" +
		"Living room: 300 ft²\n" +
		"\n" +
		"Stairs:\n" +
		"Basement → Floor 1: 12 steps\n" +
		"Floor 1 → Floor 2: 14 steps, landing 12 ft²\n" +
		"\n" +
		"Total landing area: 12 ft²"
	assert.Equal(t, want, got)
}

func TestFormatSummary_Empty(t *testing.T) {
	got := Calculate(nil, nil, model.DefaultFloors).Summary
	assert.Equal(t, "Total Area: 0 ft²\nTotal Steps: 0", got)
}

func TestFormatSummary_Idempotent(t *testing.T) {
	rooms := AggregateRooms([]model.Room{
		room("Bath", "Floor 2", 5, 8, true),
		room("bath", "Floor 2", 3, 3, true),
	}, model.DefaultFloors)
	stairs := AggregateStairs([]model.Stair{{From: "Floor 1", To: "Floor 2", Steps: 14}}, model.DefaultFloors)

	first := FormatSummary(rooms, stairs, model.DefaultFloors)
	second := FormatSummary(rooms, stairs, model.DefaultFloors)
	assert.Equal(t, first, second)
	// separate groups by exact name, both capitalized
	assert.Contains(t, first, "Floor 2:\nBath: 40 ft²\nBath: 9 ft²")
}

func TestFormatSummary_SkipsFloorsOutsideSet(t *testing.T) {
	report := Calculate([]model.Room{room("Loft", "Roof", 3, 3, true)}, nil, model.DefaultFloors)

	assert.Equal(t, 9, report.GrandTotalArea)
	assert.NotContains(t, report.Summary, "Roof:")
}
