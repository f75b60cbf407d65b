// Package drafting generates memorandum-of-understanding drafts from
// structured intake details using a configured language model agent.
package drafting

import (
	"fmt"
	"strings"
)

// Intake carries the partnership details a draft is generated from.
type Intake struct {
	CompanyName     string `json:"company_name"`
	PartnershipType string `json:"partnership_type"`
	Objective       string `json:"objective"`
	Scope           string `json:"scope"`
	EffectiveDate   string `json:"effective_date"`
}

// ComposePrompt renders the drafting prompt for an intake. The agreement
// structure is fixed so regenerated drafts stay diffable section by section.
func ComposePrompt(intake Intake) string {
	var sb strings.Builder

	sb.WriteString("Draft a memorandum of understanding with the following details.\n\n")
	sb.WriteString(fmt.Sprintf("Partner organization: %s\n", intake.CompanyName))
	sb.WriteString(fmt.Sprintf("Partnership type: %s\n", intake.PartnershipType))
	sb.WriteString(fmt.Sprintf("Objective: %s\n", intake.Objective))
	sb.WriteString(fmt.Sprintf("Scope: %s\n", intake.Scope))
	sb.WriteString(fmt.Sprintf("Effective date: %s\n", intake.EffectiveDate))
	sb.WriteString("\nStructure the agreement with these sections in order: ")
	sb.WriteString("Purpose, Scope of Collaboration, Responsibilities, Term and Termination, Confidentiality, General Provisions.\n")
	sb.WriteString("Write in plain prose without markdown formatting. Do not invent details beyond those provided.")

	return sb.String()
}
