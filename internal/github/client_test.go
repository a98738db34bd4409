package github

import (
	"context"
	"testing"
)

func TestNewClient(t *testing.T) {
	client := NewClient(context.Background(), "test-token")

	if client == nil {
		t.Fatal("NewClient() returned nil")
	}

	if client.client == nil {
		t.Error("NewClient() client field is nil")
	}
}

// Note: the endpoint wrappers need a real GitHub token and network
// access; their behavior is covered through the prefetch package's fake
// API instead.
