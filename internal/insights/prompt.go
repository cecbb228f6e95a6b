package insights

import (
	"fmt"
	"strings"

	"stocklens/internal/product"
)

// PromptVersion identifies the instruction template revision. The template
// is a contract with the completion service: the extractor and validator
// downstream depend on the output shape it demands.
const PromptVersion = "v3"

// instructionTemplate is intentionally redundant and emphatic: the
// completion service is non-deterministic and prompt wording is the only
// enforcement mechanism available. The extractor still defends against
// violations.
const instructionTemplate = `You are an AI inventory analyst. Based on the provided inventory data, generate insights in three sections: Summary, Trends, and Actions. Provide concise, professional responses suitable for a dashboard.

**Instructions**:
- **Summary**: Describe the overall inventory in three distinct paragraphs (use \n\n for paragraph breaks). First paragraph: Include total items, number of categories, and total value. Second paragraph: List the top categories with their percentages (e.g., 'Electronics (42%)'). If percentages aren't calculable, explain why. Third paragraph: Provide a hypothetical comparison to the previous period, prefixed with '🔄 Based on historical data' (e.g., '🔄 Based on historical data, your current inventory levels are 18% higher than the same period last year').
- **Trends**: Write three distinct paragraphs (use \n\n for paragraph breaks), identifying growth or decline patterns for products or categories, inferring based on quantities (e.g., low stock suggests high demand). First paragraph: Discuss demand patterns. Second paragraph: Comment on inventory management. Third paragraph: End with a note like '📈 Trend analysis based on current data, with recommendations for improvement'.
- **Actions**: Provide recommendations in two sections with markdown formatting:
  - Start with '**⚠ Restock Recommendations:**' followed by a markdown list (using '-') of specific low or out-of-stock items (e.g., '- Wireless Mouse (8 remaining)').
  - Then add '**💡 Optimization Suggestions:**' followed by a markdown list (using '-') of strategies (e.g., '- Reduce desk lamp inventory by 15% based on seasonal trends').
  - Use \n for line breaks between bullets and sections.
- Each section should be as detailed as possible.
- **Critical**: Return ONLY a valid JSON object with keys 'summary', 'trends', 'actions'. The values should be strings with markdown and emojis where specified. Wrap the JSON object in a fenced code block marked json, or return it as the entire response body with no surrounding text. Ensure the JSON is parseable.

**Example Output**:
` + "```json" + `
{"summary": "Your inventory consists of 93 items across 5 categories, with a total value of $12489.75.\n\nElectronics is your largest category (42%), followed by Home Office (28%) and Accessories (15%).\n\n🔄 Based on historical data, your current inventory levels are 18% higher than the same period last year.", "trends": "Wireless Headphones and Ergonomic Keyboards have shown consistent growth over the past 3 months.\n\nSales of desk accessories have decreased by 12% compared to last quarter.\n\n📈 Trend analysis based on 6-month data.", "actions": "**⚠ Restock Recommendations:**\n- Wireless Mouse (8 remaining)\n- Monitor Stand (Out of Stock)\n**💡 Optimization Suggestions:**\n- Consider bundling wireless peripherals for increased sales"}
` + "```" + `

Now, generate the insights based on the provided data. Ensure the output is concise and professional.`

// BuildPrompt renders the instruction template plus a textual digest of
// the summary. Identical summaries yield byte-identical prompts: no
// randomness, no timestamps.
func BuildPrompt(s Summary) string {
	var b strings.Builder
	b.WriteString(instructionTemplate)
	b.WriteString("\n\n**Inventory Data**:\n")
	b.WriteString(renderDigest(s))
	return b.String()
}

func renderDigest(s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total items: %d\n", s.TotalItems)
	fmt.Fprintf(&b, "Total value: $%s\n", s.TotalValue.String())
	fmt.Fprintf(&b, "Categories: %s\n", strings.Join(s.Categories, ", "))
	fmt.Fprintf(&b, "Top categories: %s\n", renderShares(s.Shares))
	fmt.Fprintf(&b, "Low stock items (0 < qty < %d): %s\n", lowStockThreshold, renderLowStock(s.LowStock))
	fmt.Fprintf(&b, "Out of stock items: %s", renderOutOfStock(s.OutOfStock))
	return b.String()
}

func renderShares(shares []CategoryShare) string {
	if len(shares) == 0 {
		return "None"
	}
	parts := make([]string, 0, len(shares))
	for _, sh := range shares {
		parts = append(parts, fmt.Sprintf("%s (%d%%)", sh.Category, int(sh.Percent+0.5)))
	}
	return strings.Join(parts, ", ")
}

func renderLowStock(items []product.Product) string {
	if len(items) == 0 {
		return "None"
	}
	parts := make([]string, 0, len(items))
	for _, p := range items {
		parts = append(parts, fmt.Sprintf("%s (%d)", p.Name, p.Quantity))
	}
	return strings.Join(parts, ", ")
}

func renderOutOfStock(items []product.Product) string {
	if len(items) == 0 {
		return "None"
	}
	parts := make([]string, 0, len(items))
	for _, p := range items {
		parts = append(parts, p.Name)
	}
	return strings.Join(parts, ", ")
}
