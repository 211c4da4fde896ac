package calculator

import (
	"sort"

	"github.com/cmtegi-hash/square-foot-calculator-clean/pkg/model"
)

// AggregateStairs sums steps and landing areas over every stair and returns
// the stairs stable-sorted by the position of their origin floor.
func AggregateStairs(stairs []model.Stair, floors model.FloorSet) model.StairTotals {
	var steps, landing int
	ordered := make([]model.Stair, len(stairs))
	copy(ordered, stairs)

	for _, s := range stairs {
		steps += s.Steps
		landing += s.LandingArea
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return floors.Index(ordered[i].From) < floors.Index(ordered[j].From)
	})

	return model.StairTotals{
		TotalSteps:   steps,
		TotalLanding: landing,
		Ordered:      ordered,
	}
}
