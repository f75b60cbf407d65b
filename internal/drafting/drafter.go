package drafting

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Drafter produces agreement text from an intake.
type Drafter interface {
	Draft(ctx context.Context, intake Intake) (string, error)
}

// AgentDrafter generates drafts through a go-agents chat agent. A fresh
// agent is constructed per call so concurrent workflow runs do not share
// conversation state.
type AgentDrafter struct {
	config gaconfig.AgentConfig
	logger *slog.Logger
}

// NewAgentDrafter creates an AgentDrafter with the given agent configuration.
func NewAgentDrafter(config gaconfig.AgentConfig, logger *slog.Logger) *AgentDrafter {
	return &AgentDrafter{
		config: config,
		logger: logger.With("system", "drafting"),
	}
}

func (d *AgentDrafter) Draft(ctx context.Context, intake Intake) (string, error) {
	a, err := agent.New(&d.config)
	if err != nil {
		return "", fmt.Errorf("%w: create agent: %w", ErrGenerateFailed, err)
	}

	prompt := ComposePrompt(intake)

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerateFailed, err)
	}

	draft := strings.TrimSpace(resp.Content())
	if draft == "" {
		return "", ErrEmptyDraft
	}

	d.logger.Info("draft generated",
		"company", intake.CompanyName,
		"partnership_type", intake.PartnershipType,
		"length", len(draft),
	)
	return draft, nil
}
