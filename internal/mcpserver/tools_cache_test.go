package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshSpec(t *testing.T) {
	sess, remote := newTestSession(t)
	ctx := context.Background()

	// Prime the cache.
	_, _, err := sess.handleListEndpoints(ctx, &mcp.CallToolRequest{}, listEndpointsInput{})
	require.NoError(t, err)
	require.EqualValues(t, 1, remote.specGets.Load())

	_, output, err := sess.handleRefreshSpec(ctx, &mcp.CallToolRequest{}, refreshSpecInput{})
	require.NoError(t, err)

	// A fresh validator would have served the cache; refresh must force
	// a new download regardless.
	assert.EqualValues(t, 2, remote.specGets.Load())
	assert.Equal(t, "Pet Store", output.Title)
	assert.Equal(t, "1.0.0", output.Version)
	assert.Equal(t, "3.x", output.SpecVersion)
	assert.Equal(t, 3, output.EndpointCount)
	assert.Equal(t, 2, output.SchemaCount)
}
