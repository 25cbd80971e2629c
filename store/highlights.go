package store

import (
	"fmt"

	"cristalclean/api/models"
)

// buildHighlights turns the rollup into the short French sentences shown
// at the top of the admin dashboard.
func buildHighlights(ins models.Insights) []string {
	var out []string

	if ins.TodayVisitors > 0 {
		sign := ""
		if ins.GrowthPercent > 0 {
			sign = "+"
		}
		out = append(out, fmt.Sprintf("%d visiteurs aujourd'hui (%s%d%% vs hier)",
			ins.TodayVisitors, sign, ins.GrowthPercent))
	}
	if len(ins.TopPages) > 0 {
		out = append(out, fmt.Sprintf("Page la plus visitée : %s (%d vues)",
			ins.TopPages[0].Path, ins.TopPages[0].Count))
	}
	if ins.Funnel.Visitors > 0 {
		out = append(out, fmt.Sprintf("Heure de pointe : %dh", ins.PeakHour))
		out = append(out, fmt.Sprintf("%d%% des visiteurs utilisent le chatbot",
			ins.Funnel.ConversionRate))
	}
	if ins.Funnel.ContactAttempts > 0 {
		out = append(out, fmt.Sprintf("%d visites de la page contact", ins.Funnel.ContactAttempts))
	}
	return out
}
