package formatter

import (
	"fmt"
	"io"
	"sort"

	"github.com/openclaw/dev-cockpit/internal/usage"
	"github.com/openclaw/dev-cockpit/internal/util"
)

// WriteUsageText renders a usage report in the summary layout: totals
// first, then projects by descending cost with per-model lines.
func WriteUsageText(w io.Writer, result *usage.Result) error {
	fmt.Fprintf(w, "Project Usage Summary (%s)\n", periodLabel(result.Days))
	fmt.Fprintln(w, rule(60))
	fmt.Fprintf(w, "Total: %d sessions, %s tokens, %s\n\n",
		result.Totals.Sessions,
		util.FormatTokens(result.Totals.TotalTokens),
		util.FormatCost(result.Totals.EstimatedCostUSD))

	for _, name := range result.SortedByCost() {
		proj := result.Projects[name]
		fmt.Fprintf(w, "  %s %3d sessions  %10s  %6s active\n",
			pad(name, 30),
			proj.Sessions,
			util.FormatCost(proj.EstimatedCostUSD),
			util.FormatHours(proj.ActiveTimeHours))

		for _, model := range modelsByCost(proj) {
			detail := proj.Models[model]
			fmt.Fprintf(w, "    %s %3d sessions  %10s\n",
				pad(model, 28), detail.Sessions, util.FormatCost(detail.CostUSD))
		}
	}
	return nil
}

func modelsByCost(proj *usage.ProjectUsage) []string {
	models := make([]string, 0, len(proj.Models))
	for model := range proj.Models {
		models = append(models, model)
	}
	sort.Slice(models, func(i, j int) bool {
		a, b := proj.Models[models[i]], proj.Models[models[j]]
		if a.CostUSD != b.CostUSD {
			return a.CostUSD > b.CostUSD
		}
		return models[i] < models[j]
	})
	return models
}
