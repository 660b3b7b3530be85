package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	milling "Machinist/internal/calc/milling"
	"github.com/phpdave11/gofpdf"
)

// Input is one calculation rendered as a printable setup sheet for the
// operator.
type Input struct {
	Project  string          `json:"project"`
	Author   string          `json:"author"`
	Title    string          `json:"title"`
	ToolName string          `json:"tool_name"`
	Request  milling.Request `json:"request"`
	Notes    string          `json:"notes"`
}

type Handler struct{}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Title == "" {
		input.Title = "Milling Setup Sheet"
	}

	res, err := milling.Calculate(input.Request)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, input.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Tool and cut")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	if input.ToolName != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Tool: %s", input.ToolName))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Diameter: %.2f mm, %d flutes, stickout %.1f mm",
		input.Request.DiameterMM, input.Request.FluteNum, res.ToolStickout))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("DOC: %.2f mm, WOC: %.2f mm", res.DOC, res.WOC))
	pdf.Ln(6)
	if res.RigidityName != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Machine: %s", res.RigidityName))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Recommended parameters")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	rpmLine := fmt.Sprintf("Spindle speed: %.0f RPM", res.RPM)
	if res.RPMMessage != "" {
		rpmLine += fmt.Sprintf(" (%s)", res.RPMMessage)
	}
	pdf.Cell(0, 6, rpmLine)
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Feed rate: %.0f mm/min at %.4f mm/tooth", res.Feed, res.EffectiveMMPT))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("MRR: %.2f cm3/min, Power: %.2f kW, Torque: %.2f Nm",
		res.MRR, res.PowerKW, res.TorqueNM))
	pdf.Ln(10)

	if len(res.Warnings) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Warnings")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, warning := range res.Warnings {
			pdf.MultiCell(0, 6, "- "+warning, "", "L", false)
		}
		pdf.Ln(4)
	}

	if input.Notes != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, input.Notes, "", "L", false)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"setup-sheet.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}
