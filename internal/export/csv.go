package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/cmtegi-hash/square-foot-calculator-clean/pkg/model"
	"github.com/cmtegi-hash/square-foot-calculator-clean/pkg/util"
)

// CSVHeader is the column layout shared by every exported row.
var CSVHeader = []string{"section", "floor", "name", "area_sqft", "steps", "landing_sqft"}

// WriteCSV writes grouped rooms, ordered stairs and the totals of a report as flat rows.
func WriteCSV(w io.Writer, report model.Report) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(CSVHeader); err != nil {
		return err
	}
	for _, g := range report.Rooms.Grouped {
		if err := writer.Write([]string{"room", g.Floor, util.Capitalize(g.Name), strconv.Itoa(g.Area), "", ""}); err != nil {
			return err
		}
	}
	for _, s := range report.Stairs.Ordered {
		if err := writer.Write([]string{"stair", s.From, s.Name(), "", strconv.Itoa(s.Steps), strconv.Itoa(s.LandingArea)}); err != nil {
			return err
		}
	}
	total := []string{
		"total", "", "",
		strconv.Itoa(report.GrandTotalArea),
		strconv.Itoa(report.StairsStepsTotal),
		strconv.Itoa(report.StairsLandingTotal),
	}
	if err := writer.Write(total); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}
