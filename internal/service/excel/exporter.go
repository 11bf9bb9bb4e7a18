package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/isaaclee0/elvantoexport/internal/model"
)

// SheetName is the single sheet every export is written to.
const SheetName = "Elvanto Export"

// Placeholder fills cells that would otherwise be empty, so a blank
// cell always means "not exported" rather than "no value".
const Placeholder = "-"

const maxColumnWidth = 50

// Exporter renders an aggregated people list as a spreadsheet.
type Exporter struct{}

// NewExporter creates the exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes one row per person: display name, email, and the
// combined group/position cell. An empty list yields a header-only
// sheet.
func (e *Exporter) Export(people []model.Person) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SheetName)

	headers := []string{"Name", "Email", "Groups & Service Positions"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(SheetName, 1, 1, headerStyle); err != nil {
		return nil, err
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}

	for i, p := range people {
		row := i + 2
		cells := []string{
			orPlaceholder(p.DisplayName()),
			orPlaceholder(p.Email),
			MembershipCell(p),
		}
		for j, val := range cells {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := f.SetCellValue(SheetName, cell, val); err != nil {
				return nil, err
			}
			if len(val) > widths[j] {
				widths[j] = len(val)
			}
		}
	}

	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		w := widths[i] + 2
		if w > maxColumnWidth {
			w = maxColumnWidth
		}
		if err := f.SetColWidth(SheetName, col, col, float64(w)); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// MembershipCell concatenates "<group> (<role>)" for each group
// membership and "<position>" for each position membership,
// comma-separated in aggregation order.
func MembershipCell(p model.Person) string {
	parts := make([]string, 0, len(p.Groups)+len(p.Positions))
	for _, g := range p.Groups {
		parts = append(parts, fmt.Sprintf("%s (%s)", g.Name, g.Role))
	}
	for _, sp := range p.Positions {
		parts = append(parts, sp.Name)
	}
	if len(parts) == 0 {
		return Placeholder
	}
	return strings.Join(parts, ", ")
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
