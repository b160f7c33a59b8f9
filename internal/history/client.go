// Package history records applied resource changes in a Neo4j database so
// successive applies build up an auditable change log per resource.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"terraform-applyx/internal/classify"
)

// Client handles the connection and communication with the history database.
type Client struct {
	Driver neo4j.DriverWithContext
}

// NewClient creates a new history client and establishes a connection.
func NewClient(uri, user, pass string) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, pass, ""))
	if err != nil {
		return nil, fmt.Errorf("could not create neo4j driver: %w", err)
	}

	return &Client{Driver: driver}, nil
}

// Close gracefully shuts down the driver.
func (c *Client) Close(ctx context.Context) error {
	return c.Driver.Close(ctx)
}

// VerifyConnectivity checks if a connection can be established with the
// database.
func (c *Client) VerifyConnectivity(ctx context.Context) error {
	return c.Driver.VerifyConnectivity(ctx)
}

// RecordChanges upserts one node per changed resource, stamping the action
// kind and the apply time. A replace touches the same node twice, once per
// action, so the delete/create order in the change set is preserved.
func (c *Client) RecordChanges(ctx context.Context, set classify.ChangeSet, appliedAt time.Time) error {
	query, params := changesToCypher(set, appliedAt)
	if params["changes"] == nil {
		return nil
	}

	session := c.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, fmt.Errorf("failed to record changes: %w", err)
		}
		return result.Consume(ctx)
	})

	if err != nil {
		return fmt.Errorf("failed to update history: %w", err)
	}

	return nil
}
