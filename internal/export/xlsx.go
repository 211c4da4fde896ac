package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cmtegi-hash/square-foot-calculator-clean/pkg/model"
	"github.com/cmtegi-hash/square-foot-calculator-clean/pkg/util"
)

const (
	SummarySheet = "Summary"
	RoomsSheet   = "Rooms"
	StairsSheet  = "Stairs"
)

// XLSX renders a report as a workbook with a summary sheet plus one sheet
// each for grouped rooms and ordered stairs.
func XLSX(report model.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	summaryRows := [][]any{
		{"Total Area (ft²)", report.GrandTotalArea},
		{"Room Area (ft²)", report.RoomAreaTotal},
		{"Landing Area (ft²)", report.StairsLandingTotal},
		{"Total Steps", report.StairsStepsTotal},
		{},
	}
	for _, line := range strings.Split(report.Summary, "\n") {
		summaryRows = append(summaryRows, []any{line})
	}

	roomRows := make([][]any, 0, len(report.Rooms.Grouped))
	for _, g := range report.Rooms.Grouped {
		roomRows = append(roomRows, []any{g.Floor, util.Capitalize(g.Name), g.Area})
	}

	stairRows := make([][]any, 0, len(report.Stairs.Ordered))
	for _, s := range report.Stairs.Ordered {
		stairRows = append(stairRows, []any{s.From, s.To, s.Steps, s.LandingArea})
	}

	sheets := []struct {
		name   string
		header []string
		widths []float64
		rows   [][]any
	}{
		{name: SummarySheet, header: []string{"Metric", "Value"}, widths: []float64{40, 12}, rows: summaryRows},
		{name: RoomsSheet, header: []string{"Floor", "Room", "Area (ft²)"}, widths: []float64{15, 25, 12}, rows: roomRows},
		{name: StairsSheet, header: []string{"From", "To", "Steps", "Landing (ft²)"}, widths: []float64{15, 15, 10, 14}, rows: stairRows},
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				return nil, fmt.Errorf("rename default sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", sh.name, err)
		}
		if err := writeSheet(f, sh.name, sh.header, sh.widths, sh.rows, headerStyle); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, header []string, widths []float64, rows [][]any, headerStyle int) error {
	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("set header cell %s!%s: %w", sheet, cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("set header style: %w", err)
		}
	}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("convert column number: %w", err)
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("set cell %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
