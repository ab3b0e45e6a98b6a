package classifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/scguardian/guardian/internal/models"
)

// SystemInstruction is the analyst persona and decision rules sent with every
// request. The rules are advisory to the model; only the schema is enforced.
const SystemInstruction = `You are a Supply Chain Risk Analyst for small businesses. Your job is to analyze global alerts and determine if they affect a specific business's supply chain.

INPUTS:
1. ALERT: A news item or warning about a global event
2. BUSINESS PROFILE: A description of the user's business, sourcing regions, and dependencies

TASK:
1. Identify what the alert is about (disaster, port issue, trade policy, recall, etc.)
2. Identify the geographic regions and industries affected
3. Compare against the business profile
4. Determine relevance and urgency

RULES:
- Be conservative with "critical" urgency. Reserve it for genuine emergencies.
- If the alert region doesn't overlap with the user's supply chain, relevant=false
- Consider second-order effects (e.g. Taiwan chip shortage -> phone case electronics)
- If uncertain, set confidence="low" and explain in reasoning
- Never invent supply chain connections that aren't plausible

OUTPUT:
Return a single JSON object with the fields relevant, confidence, urgency, impact_type, affected_aspect, reasoning, recommended_action and estimated_timeline. Use null for fields that do not apply.`

// BuildPrompt renders the alert and the business profile as labelled plain text.
func BuildPrompt(profile models.BusinessProfile, item models.RawNewsItem) string {
	var b strings.Builder

	b.WriteString("--- GLOBAL ALERT ---\n")
	fmt.Fprintf(&b, "Source: %s\n", item.Source)
	fmt.Fprintf(&b, "Type: %s\n", item.Type)
	fmt.Fprintf(&b, "Date: %s\n", formatDate(item.Date))
	fmt.Fprintf(&b, "Location: %s\n", item.Location)
	fmt.Fprintf(&b, "Title: %s\n", item.Title)
	fmt.Fprintf(&b, "Summary: %s\n", item.Summary)

	b.WriteString("\n--- BUSINESS PROFILE ---\n")
	fmt.Fprintf(&b, "Business Type: %s\n", profile.BusinessType)
	fmt.Fprintf(&b, "Products: %s\n", profile.ProductsDescription)
	fmt.Fprintf(&b, "Sourcing Regions: %s\n", strings.Join(profile.SourceRegions, ", "))
	fmt.Fprintf(&b, "Entry Ports: %s\n", strings.Join(profile.EntryPorts, ", "))
	fmt.Fprintf(&b, "Critical Dependencies: %s\n", profile.CriticalDependencies)
	fmt.Fprintf(&b, "Risk Tolerance: %s\n", profile.RiskTolerance)

	b.WriteString("\n--- ANALYSIS REQUEST ---\n")
	b.WriteString("Determine if this alert affects this business's supply chain.\n")
	b.WriteString("Return JSON matching the schema.\n")

	return b.String()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
