package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/phpdave11/gofpdf"

	"github.com/greencart-dev/greencart/backend/internal/domain"
)

// ExportSimulationResult renders a stored report as a PDF for managers who
// want to share a run outside the dashboard.
func (h *Handler) ExportSimulationResult(w http.ResponseWriter, r *http.Request) {
	result := r.Context().Value(SimulationResultCtx).(*domain.SimulationResult)

	pdfBytes, err := buildSimulationPDF(result)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=simulation_%d.pdf", result.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}

func buildSimulationPDF(result *domain.SimulationResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Simulation Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, fmt.Sprintf("Simulation Report #%d", result.ID))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Created          : %s", result.CreatedAt.Format("2006-01-02 15:04")),
		fmt.Sprintf("Drivers available: %d", result.Inputs.DriversAvailable),
		fmt.Sprintf("Shift start      : %s", result.Inputs.StartTime),
		fmt.Sprintf("Max hours/driver : %g", result.Inputs.MaxHoursPerDriver),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "KPIs")
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 12)
	kpis := result.KPIs
	lines = []string{
		fmt.Sprintf("Total profit         : %.2f Rs", kpis.TotalProfit),
		fmt.Sprintf("Efficiency           : %d%%", kpis.Efficiency),
		fmt.Sprintf("On time / late       : %d / %d", kpis.OnTime, kpis.Late),
		fmt.Sprintf("Base fuel cost       : %.2f Rs", kpis.FuelCostBreakdown.BaseFuel),
		fmt.Sprintf("High traffic surcharge: %.2f Rs", kpis.FuelCostBreakdown.HighTrafficSurcharge),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Assignments")
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(25, 7, "Order", "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 7, "Driver", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 7, "Route", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 7, "On time", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 7, "Profit (Rs)", "1", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, a := range result.Assignments {
		onTime := "no"
		if a.OnTime {
			onTime = "yes"
		}
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", a.OrderID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(60, 7, a.DriverName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", a.RouteID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 7, onTime, "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", a.ProfitForOrder), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
