package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	// NoProject names the sheet holding timesheets without a project.
	NoProject = "No project"
	// EmptySheet is the only sheet of a report built from zero rows.
	EmptySheet = "Timesheets"

	maxSheetName = 31
	timeLayout   = "2006-01-02 15:04"
	defaultSheet = "Sheet1"
)

var headers = []string{"Timesheet ID", "Employee", "Start Time", "End Time", "Hours", "Summary"}

// Row is one timesheet line of the export.
type Row struct {
	ID        int64
	Employee  string
	Project   string
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Summary   string
}

// Generator holds the workbook while sheets are being added.
type Generator struct {
	file   *excelize.File
	sheets int
}

func NewGenerator() *Generator {
	return &Generator{file: excelize.NewFile()}
}

// GenerateTimesheetReport groups rows by project, one sheet per project,
// keeping the order of rows inside each sheet. Sheets are sorted by name.
// Zero rows produce a single sheet with headers only.
func GenerateTimesheetReport(rows []Row) (*bytes.Buffer, error) {
	gen := NewGenerator()
	defer gen.file.Close()

	// sheet names are case-insensitive in a workbook
	groups := make(map[string][]Row)
	titles := make(map[string]string)
	for _, row := range rows {
		name := SheetName(row.Project)
		key := strings.ToLower(name)
		if _, ok := titles[key]; !ok {
			titles[key] = name
		}
		groups[key] = append(groups[key], row)
	}

	if len(groups) == 0 {
		if err := gen.addSheet(EmptySheet, 0, nil); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		if err := gen.addSheet(titles[key], i+1, groups[key]); err != nil {
			return nil, err
		}
	}

	gen.file.SetActiveSheet(0)

	buffer, err := gen.file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buffer, nil
}

func (g *Generator) addSheet(name string, tableIndex int, rows []Row) error {
	// the workbook starts with a default sheet, reuse it for the first one
	if g.sheets == 0 {
		if err := g.file.SetSheetName(defaultSheet, name); err != nil {
			return fmt.Errorf("failed to rename default sheet to %q: %w", name, err)
		}
	} else if _, err := g.file.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", name, err)
	}
	g.sheets++

	if err := g.setupSheet(name); err != nil {
		return fmt.Errorf("failed to setup sheet %q: %w", name, err)
	}

	for i, row := range rows {
		if err := g.addRow(name, i+2, row); err != nil {
			return fmt.Errorf("failed to add row %d: %w", i+2, err)
		}
	}

	if len(rows) == 0 {
		return nil
	}

	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	if err := g.file.AddTable(name, &excelize.Table{
		Range:     fmt.Sprintf("A1:%s%d", lastCol, len(rows)+1),
		Name:      fmt.Sprintf("timesheets_%d", tableIndex),
		StyleName: "TableStyleMedium9",
	}); err != nil {
		return fmt.Errorf("failed to add table: %w", err)
	}
	return nil
}

func (g *Generator) setupSheet(name string) error {
	headerStyle, err := g.file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err = g.file.SetSheetRow(name, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	lastCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err = g.file.SetCellStyle(name, "A1", lastCell, headerStyle); err != nil {
		return fmt.Errorf("failed to style headers: %w", err)
	}

	widths := map[string]float64{"A": 14, "B": 28, "C": 18, "D": 18, "E": 10, "F": 60}
	for col, width := range widths {
		if err = g.file.SetColWidth(name, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	return nil
}

func (g *Generator) addRow(name string, rowNum int, row Row) error {
	values := []interface{}{
		row.ID,
		row.Employee,
		row.StartTime.Format(timeLayout),
		row.EndTime.Format(timeLayout),
		Hours(row.Duration),
		row.Summary,
	}
	cell, _ := excelize.CoordinatesToCellName(1, rowNum)
	return g.file.SetSheetRow(name, cell, &values)
}

// Hours renders a duration as hours rounded to two decimals.
func Hours(d time.Duration) float64 {
	return float64(d.Round(36*time.Second)) / float64(time.Hour)
}

// SheetName maps a project to a valid worksheet name: characters excel
// rejects become spaces and the result is cut to 31 runes.
func SheetName(project string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return ' '
		}
		return r
	}, project)
	name = strings.Trim(strings.TrimSpace(name), "'")
	if name == "" {
		return NoProject
	}

	if utf8.RuneCountInString(name) > maxSheetName {
		name = strings.TrimSpace(string([]rune(name)[:maxSheetName]))
	}
	return name
}
