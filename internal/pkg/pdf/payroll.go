package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/payrollanalytics"
	"github.com/jung-kurt/gofpdf"
)

// RenderPayrollReport lays out the payroll story and forecast on a single A4 page.
func RenderPayrollReport(story *payrollanalytics.PayrollStory, forecast *payrollanalytics.Forecast, generatedAt time.Time) ([]byte, error) {
	if story == nil {
		return nil, fmt.Errorf("payroll story is required")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payroll Analytics Report", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Payroll Analytics Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, "Generated "+generatedAt.UTC().Format("2006-01-02 15:04 MST"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 7, story.Headline, "", "L", false)
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, story.Narrative, "", "L", false)
	pdf.Ln(6)

	if !story.InsufficientData {
		rows := [][2]string{
			{"Trend", string(story.Trend)},
			{"Change", fmt.Sprintf("%.1f%%", story.ChangePercentage)},
			{"Current net pay", story.CurrentTotal.StringFixed(2)},
			{"Previous net pay", story.PreviousTotal.StringFixed(2)},
			{"Difference", story.Difference.StringFixed(2)},
			{"Headcount change", fmt.Sprintf("%+d", story.HeadcountChange)},
			{"Exceptions", fmt.Sprintf("%d", story.ExceptionCount)},
		}
		writeTable(pdf, "Run comparison", rows)
	}

	if forecast != nil {
		rows := [][2]string{
			{"Method", forecast.Method},
			{"Data points", fmt.Sprintf("%d", forecast.DataPoints)},
			{"Next period", fmt.Sprintf("%.2f", forecast.NextMonthPrediction)},
			{"Slope per run", fmt.Sprintf("%.2f", forecast.Slope)},
			{"Confidence", fmt.Sprintf("%.0f%%", forecast.Confidence*100)},
		}
		writeTable(pdf, "Forecast", rows)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payroll report: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTable(pdf *gofpdf.Fpdf, title string, rows [][2]string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range rows {
		pdf.CellFormat(60, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(80, 7, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)
}
