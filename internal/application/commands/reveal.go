package commands

import (
	"context"
	"fmt"

	"relinker/internal/application"
	"relinker/internal/domain"
	"relinker/internal/ports"
)

// RevealCommand selects and focuses a node in the host viewport. Pure
// navigation side channel; it has no effect on scan or replace state.
type RevealCommand struct {
	provider ports.DocumentProvider
	NodeID   domain.NodeID
}

// NewRevealCommand creates a new RevealCommand
func NewRevealCommand(provider ports.DocumentProvider, id domain.NodeID) *RevealCommand {
	return &RevealCommand{
		provider: provider,
		NodeID:   id,
	}
}

// Validate checks if the reveal target is set
func (c *RevealCommand) Validate() error {
	if c.NodeID == "" {
		return &application.ValidationError{
			Field:   "nodeID",
			Message: "node ID is required",
		}
	}
	return nil
}

// Execute resolves the node and asks the host to focus it
func (c *RevealCommand) Execute(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}

	node, err := c.provider.NodeByID(ctx, c.NodeID)
	if err != nil {
		return fmt.Errorf("failed to resolve node %s: %w", c.NodeID, err)
	}
	if node == nil {
		return fmt.Errorf("node %s: %w", c.NodeID, application.ErrNotFound)
	}
	return c.provider.Reveal(ctx, c.NodeID)
}
