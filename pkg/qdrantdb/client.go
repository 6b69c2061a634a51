// Package qdrantdb implements the article vector index on a Qdrant
// collection.
package qdrantdb

import (
	"fmt"

	"github.com/qdrant/go-client/qdrant"
)

// Client wraps the Qdrant gRPC client.
type Client struct {
	Client *qdrant.Client
}

func NewClient(host string, port int) (*Client, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port, // gRPC port
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to qdrant: %w", err)
	}
	return &Client{Client: client}, nil
}
