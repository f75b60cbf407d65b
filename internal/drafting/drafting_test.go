package drafting

import (
	"strings"
	"testing"
)

func TestComposePrompt(t *testing.T) {
	intake := Intake{
		CompanyName:     "Acme Robotics",
		PartnershipType: "Internship",
		Objective:       "Host engineering interns",
		Scope:           "Summer cohort, robotics lab",
		EffectiveDate:   "2026-06-01",
	}

	prompt := ComposePrompt(intake)

	for _, want := range []string{
		"Acme Robotics",
		"Internship",
		"Host engineering interns",
		"Summer cohort, robotics lab",
		"2026-06-01",
		"Term and Termination",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
