package cli

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/recipe-resolver/internal/domain/production"
)

// ChainFormatter renders production combinations as dependency trees
type ChainFormatter struct {
	styles Styles
}

// NewChainFormatter creates a new chain formatter
func NewChainFormatter(styles Styles) *ChainFormatter {
	return &ChainFormatter{styles: styles}
}

// FormatTree renders the combination as a tree rooted at its target.
// Items without a chain step are raw materials; an ingredient that is already
// open higher up the branch is a cut cycle.
func (f *ChainFormatter) FormatTree(c *production.ProductionCombination) string {
	if c == nil {
		return "(empty tree)"
	}

	steps := make(map[string]production.ChainStep, len(c.RecipeChain))
	for _, step := range c.RecipeChain {
		steps[step.Item] = step
	}

	var builder strings.Builder
	open := make(map[string]bool)
	f.formatNode(&builder, steps, open, c.Target, 0, "", true, true)
	return builder.String()
}

func (f *ChainFormatter) formatNode(
	builder *strings.Builder,
	steps map[string]production.ChainStep,
	open map[string]bool,
	item string,
	amount float64,
	prefix string,
	isLast bool,
	isRoot bool,
) {
	var linePrefix string
	switch {
	case isRoot:
		linePrefix = ""
	case isLast:
		linePrefix = prefix + "└── "
	default:
		linePrefix = prefix + "├── "
	}

	quantity := ""
	if amount > 0 {
		quantity = fmt.Sprintf(" x%s", formatAmount(amount))
	}

	step, manufactured := steps[item]
	switch {
	case open[item]:
		builder.WriteString(fmt.Sprintf("%s%s%s %s\n",
			linePrefix, f.styles.Item.Render(item), quantity, f.styles.Circular.Render("(cycle cut)")))
		return
	case !manufactured:
		builder.WriteString(fmt.Sprintf("%s%s%s %s\n",
			linePrefix, f.styles.Raw.Render(item), quantity, f.styles.Muted.Render("(raw)")))
		return
	}

	machine := ""
	if step.MachineID != "" {
		machine = " " + f.styles.Machine.Render("@ "+step.MachineID)
	}
	builder.WriteString(fmt.Sprintf("%s%s%s [%s]%s\n",
		linePrefix, f.styles.Item.Render(item), quantity, f.styles.Recipe.Render(step.Recipe), machine))

	var childPrefix string
	switch {
	case isRoot:
		childPrefix = ""
	case isLast:
		childPrefix = prefix + "    "
	default:
		childPrefix = prefix + "│   "
	}

	open[item] = true
	for i, in := range step.Ingredients {
		f.formatNode(builder, steps, open, in.Item, in.Amount, childPrefix, i == len(step.Ingredients)-1, false)
	}
	delete(open, item)
}

// FormatSummary creates a one-line summary of a combination
func (f *ChainFormatter) FormatSummary(c *production.ProductionCombination) string {
	summary := fmt.Sprintf("%d recipes, %d raw materials", len(c.RecipeChain), len(c.RawMaterials))
	if c.HasCycleCut() {
		summary += ", " + f.styles.Circular.Render(fmt.Sprintf("%d cycles cut", len(c.CircularEdges)))
	}
	return summary
}

// FormatCompactChain renders the chain in production order on one line
func (f *ChainFormatter) FormatCompactChain(c *production.ProductionCombination) string {
	if len(c.RecipeChain) == 0 {
		return "(empty)"
	}

	parts := make([]string, 0, len(c.RecipeChain))
	for _, step := range c.RecipeChain {
		parts = append(parts, fmt.Sprintf("%s[%s]", step.Item, step.RecipeID))
	}
	return strings.Join(parts, " → ")
}

func formatAmount(amount float64) string {
	if amount == float64(int64(amount)) {
		return fmt.Sprintf("%d", int64(amount))
	}
	return fmt.Sprintf("%.2f", amount)
}
