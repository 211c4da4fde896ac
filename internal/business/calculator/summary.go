package calculator

import (
	"fmt"
	"strings"

	"github.com/cmtegi-hash/square-foot-calculator-clean/pkg/model"
	"github.com/cmtegi-hash/square-foot-calculator-clean/pkg/util"
)

// FormatSummary renders the copyable text report. Identical inputs always
// produce byte-identical output.
func FormatSummary(rooms model.RoomTotals, stairs model.StairTotals, floors model.FloorSet) string {
	lines := []string{
		fmt.Sprintf("Total Area: %d ft²", rooms.TotalArea+stairs.TotalLanding),
		fmt.Sprintf("Total Steps: %d", stairs.TotalSteps),
		"",
	}

	for _, floor := range floors {
		var floorLines []string
		for _, g := range rooms.Grouped {
			if g.Floor != floor {
				continue
			}
			floorLines = append(floorLines, fmt.Sprintf("%s: %d ft²", util.Capitalize(g.Name), g.Area))
		}
		if len(floorLines) == 0 {
			continue
		}
		lines = append(lines, floor+":")
		lines = append(lines, floorLines...)
		lines = append(lines, "")
	}

	if len(stairs.Ordered) > 0 {
		lines = append(lines, "Stairs:")
		for _, s := range stairs.Ordered {
			line := fmt.Sprintf("%s: %d steps", s.Name(), s.Steps)
			if s.LandingArea > 0 {
				line += fmt.Sprintf(", landing %d ft²", s.LandingArea)
			}
			lines = append(lines, line)
		}
		lines = append(lines, "", fmt.Sprintf("Total landing area: %d ft²", stairs.TotalLanding))
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Calculate runs both aggregators and the formatter over one snapshot of input.
func Calculate(rooms []model.Room, stairs []model.Stair, floors model.FloorSet) model.Report {
	roomTotals := AggregateRooms(rooms, floors)
	stairTotals := AggregateStairs(stairs, floors)

	return model.Report{
		GrandTotalArea:     roomTotals.TotalArea + stairTotals.TotalLanding,
		StairsStepsTotal:   stairTotals.TotalSteps,
		RoomAreaTotal:      roomTotals.TotalArea,
		StairsLandingTotal: stairTotals.TotalLanding,
		Rooms:              roomTotals,
		Stairs:             stairTotals,
		Summary:            FormatSummary(roomTotals, stairTotals, floors),
	}
}
