package calculator

import (
	"math"
	"sort"

	"github.com/cmtegi-hash/square-foot-calculator-clean/pkg/model"
	"github.com/cmtegi-hash/square-foot-calculator-clean/pkg/util"
)

// RoundArea converts a raw product of feet into whole square feet.
// Halves round to even, and every room or landing is rounded on its own before summing.
// Values beyond MaxArea saturate instead of wrapping.
func RoundArea(sqft float64) int {
	switch {
	case sqft > MaxArea:
		return MaxArea
	case sqft < -MaxArea:
		return -MaxArea
	}
	return int(math.RoundToEven(sqft))
}

// RoomArea is the rounded area of a single room.
func RoomArea(r model.Room) int {
	return RoundArea(r.Width * r.Length)
}

type groupKey struct {
	floor string
	name  string
}

// AggregateRooms reduces included rooms into per (floor, name) sums ordered by
// floor position and then by name, ignoring case.
func AggregateRooms(rooms []model.Room, floors model.FloorSet) model.RoomTotals {
	sums := make(map[groupKey]int)
	var keys []groupKey
	total := 0

	for _, r := range rooms {
		if !r.Include {
			continue
		}
		area := RoomArea(r)
		k := groupKey{floor: r.Floor, name: r.Name}
		if _, ok := sums[k]; !ok {
			keys = append(keys, k)
		}
		sums[k] += area
		total += area
	}

	sort.SliceStable(keys, func(i, j int) bool {
		fi, fj := floors.Index(keys[i].floor), floors.Index(keys[j].floor)
		if fi != fj {
			return fi < fj
		}
		if keys[i].floor != keys[j].floor {
			// both unknown: keep them apart deterministically
			return keys[i].floor < keys[j].floor
		}
		return util.LessFold(keys[i].name, keys[j].name)
	})

	grouped := make([]model.RoomGroup, 0, len(keys))
	for _, k := range keys {
		grouped = append(grouped, model.RoomGroup{Floor: k.floor, Name: k.name, Area: sums[k]})
	}

	return model.RoomTotals{
		TotalArea: total,
		Grouped:   grouped,
	}
}
