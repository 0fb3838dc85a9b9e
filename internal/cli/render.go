package cli

import (
	"fmt"
	"strings"

	"github.com/jburchel/kitchentory/internal/model"
	"github.com/jburchel/kitchentory/internal/parser"
)

// RenderResult formats a parse result for terminal display: store,
// items, confidence, recorded errors, and the import decision.
func RenderResult(result *parser.Result) string {
	receipt := result.Receipt
	var b strings.Builder

	b.WriteString(TitleStyle.Render(receipt.Store.DisplayName()))
	b.WriteString("\n")

	if receipt.OrderID != "" {
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("Order %s", receipt.OrderID)))
		b.WriteString("\n")
	}

	if len(receipt.Items) > 0 {
		b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-40s %8s %-6s %8s %-10s %5s",
			"Item", "Qty", "Unit", "Price", "Category", "Conf")))
		b.WriteString("\n")
		for _, item := range receipt.Items {
			price := "-"
			if item.Price != nil {
				price = fmt.Sprintf("$%.2f", *item.Price)
			}
			b.WriteString(fmt.Sprintf("%-40s %8.2f %-6s %8s %-10s %5.2f\n",
				truncate(item.Name, 40), item.Quantity, item.Unit, price,
				item.Category, item.ItemConfidence))
		}
	} else {
		b.WriteString(SubtleStyle.Render("No items extracted"))
		b.WriteString("\n")
	}

	if receipt.SkippedLines > 0 {
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("%d body lines were not recognized", receipt.SkippedLines)))
		b.WriteString("\n")
	}

	for _, perr := range receipt.ParsingErrors {
		b.WriteString(WarningStyle.Render("! " + perr.Error()))
		b.WriteString("\n")
	}

	b.WriteString(BoldStyle.Render(fmt.Sprintf("Overall confidence: %.2f", receipt.OverallConfidence)))
	b.WriteString("\n")
	b.WriteString(renderDecision(result.Decision))
	b.WriteString("\n")

	return b.String()
}

func renderDecision(decision model.ImportDecision) string {
	if decision == model.DecisionAutoProcess {
		return SuccessStyle.Render("✓ Auto-processing")
	}
	return WarningStyle.Render("⚠ Needs manual review")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
