package scoring

import (
	"fmt"
	"strings"

	"lead_scoring_backend/internal/leads/domain"
)

// The Task block is parsed by ParseResponse; keep the two in step.
const promptTemplate = `Product / Offer:
Name: %s
Value props: %s
Ideal use cases / ICP: %s

Prospect:
Name: %s
Role: %s
Company: %s
Industry: %s
Location: %s
LinkedIn bio: %s

Task:
Classify this prospect's buying intent for the product as exactly one of: High, Medium, Low.
Then provide a 1-2 sentence explanation tying back to role, industry, and fit.
Respond in the exact format:
Intent: <High|Medium|Low>
Explanation: <one or two sentences>`

// BuildPrompt renders the classification prompt for one lead.
func BuildPrompt(lead domain.Lead, offer domain.Offer) string {
	return fmt.Sprintf(promptTemplate,
		offer.Name,
		strings.Join(offer.ValueProps, "; "),
		strings.Join(offer.IdealUseCases, "; "),
		orDefault(lead.Name, "N/A"),
		orDefault(lead.Role, "N/A"),
		orDefault(lead.Company, "N/A"),
		orDefault(lead.Industry, "N/A"),
		orDefault(lead.Location, "N/A"),
		lead.LinkedInBio,
	)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
