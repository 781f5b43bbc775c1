package render

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"macroplan/internal/plan"
)

// renderPDF writes the PDF deliverable: a cover with QA summary, one section
// per day, and the grocery list.
func (r *Renderer) renderPDF(p *plan.ValidatedPlan, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s Meal Plan", r.brandName), false)

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 14, r.brandName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	if p.ClientName != "" {
		pdf.CellFormat(0, 8, fmt.Sprintf("Prepared for %s", p.ClientName), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 8, fmt.Sprintf("QA status: %s (score %d/100)", p.QA.Status, p.QA.Score), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, day := range p.Days {
		title := fmt.Sprintf("Day %d", day.DayNumber)
		if day.DayName != "" {
			title += " - " + day.DayName
		}
		if day.IsTrainingDay {
			title += " (training day)"
		}
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("Target %.0f kcal, actual %.0f kcal (%+.1f%%)",
			day.TargetKcal, day.DailyTotals.Kcal, day.VariancePercent), "", 1, "L", false, 0, "")

		for _, meal := range day.Meals {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(0, 6, fmt.Sprintf("%s: %s", meal.Slot, meal.Name), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
			pdf.CellFormat(0, 5, fmt.Sprintf("%.0f kcal, %.0fg protein, %.0fg carbs, %.0fg fat",
				meal.Nutrition.Kcal, meal.Nutrition.ProteinG, meal.Nutrition.CarbsG, meal.Nutrition.FatG),
				"", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Grocery List", "", 1, "L", false, 0, "")
	for _, cat := range p.GroceryList {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, cat.Category, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, item := range cat.Items {
			pdf.CellFormat(0, 5, fmt.Sprintf("- %s: %g %s", item.Name, item.Amount, item.Unit), "", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF deliverable: %w", err)
	}
	return nil
}
