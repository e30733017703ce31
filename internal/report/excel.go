package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"visitor-reception/internal/storage"
)

// Period selects the report time window.
type Period string

const (
	PeriodDay   Period = "day"   // today
	PeriodWeek  Period = "week"  // calendar week starting Sunday
	PeriodMonth Period = "month" // calendar month
)

// ErrUnknownPeriod is returned for a period value outside day/week/month.
var ErrUnknownPeriod = fmt.Errorf("unknown report period")

// Window returns the [from, to) interval covered by the period, relative to
// now.
func Window(period Period, now time.Time) (time.Time, time.Time, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch period {
	case PeriodDay:
		return midnight, midnight.AddDate(0, 0, 1), nil
	case PeriodWeek:
		sunday := midnight.AddDate(0, 0, -int(midnight.Weekday()))
		return sunday, sunday.AddDate(0, 0, 7), nil
	case PeriodMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return first, first.AddDate(0, 1, 0), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrUnknownPeriod, period)
	}
}

// Exporter projects stored visitor records into a downloadable spreadsheet.
// Read-only: it never mutates the store.
type Exporter struct {
	store  storage.Provider
	logger *slog.Logger
}

func NewExporter(store storage.Provider) *Exporter {
	return &Exporter{
		store:  store,
		logger: slog.With("component", "report"),
	}
}

var exportHeader = []string{
	"ID", "Full Name", "Contact Number", "Department", "Person To Visit",
	"In Time", "Out Time", "Security Out Time", "Status", "Approved", "Email Sent",
}

// Export builds an xlsx workbook for all visitors whose in_time falls within
// the period. Returns the file content and a suggested filename.
func (e *Exporter) Export(ctx context.Context, period Period) (*bytes.Buffer, string, error) {
	now := time.Now().UTC()
	from, to, err := Window(period, now)
	if err != nil {
		return nil, "", err
	}

	visitors, err := e.store.ListVisitorsBetween(ctx, from, to)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Visitors"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, title)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	f.SetColWidth(sheet, "B", "E", 22)
	f.SetColWidth(sheet, "F", "H", 20)

	for row, v := range visitors {
		values := []any{
			v.ID,
			v.FullName,
			v.ContactNumber,
			v.DepartmentVisiting,
			v.PersonToVisit,
			formatTime(&v.InTime),
			formatTime(v.OutTime),
			formatTime(v.SecurityOutTime),
			v.Status(),
			yesNo(v.Approved),
			yesNo(v.EmailSent),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		e.logger.Error("Failed to write export workbook", "error", err)
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}

	filename := fmt.Sprintf("visitors_%s_%s.xlsx", period, now.Format("2006-01-02"))
	e.logger.Info("Export generated", "period", period, "rows", len(visitors), "filename", filename)
	return buf, filename, nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
