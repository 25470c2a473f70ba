package summary

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
)

// GET /api/livesessions/:sessionid/summary/print
func PrintSummary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	session, forms, templates, err := loadSessionWithRefs(ctx, ps.ByName("sessionid"))
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	lines := Build(session, forms, templates)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "Bezoekersverslag", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 7, fmt.Sprintf(
		"Tour: %s\nGroep: %s\nContact: %s\nGestart: %s",
		session.TourName,
		session.GroupName,
		session.Contact,
		session.CreatedAt.Format("02 Jan 2006 15:04"),
	), "", "L", false)
	pdf.Ln(4)

	lastSection := ""
	for _, line := range lines {
		if line.SectionTitle != lastSection {
			lastSection = line.SectionTitle
			pdf.Ln(2)
			pdf.SetFont("Arial", "B", 13)
			pdf.CellFormat(0, 9, line.SectionTitle, "", 1, "L", false, 0, "")
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, line.Label, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		answer := "..."
		if !line.Pending {
			answer = fmt.Sprintf("%v", line.Answer)
		}
		pdf.MultiCell(0, 6, answer, "", "L", false)
		pdf.Ln(1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=verslag-"+session.SessionID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
