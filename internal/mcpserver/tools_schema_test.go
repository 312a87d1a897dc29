package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSchemaResolvesRefs(t *testing.T) {
	sess, _ := newTestSession(t)

	_, output, err := sess.handleGetSchema(context.Background(), &mcp.CallToolRequest{}, getSchemaInput{Name: "Pet"})
	require.NoError(t, err)

	assert.Equal(t, "Pet", output.Name)
	assert.Equal(t, "#/components/schemas/Pet", output.Ref)
	// The Owner reference is expanded inline.
	assert.NotContains(t, output.Definition, "$ref")
	assert.Contains(t, output.Definition, "email")
	// The self-reference bottoms out at a circular placeholder.
	assert.Contains(t, output.Definition, "circular reference to #/components/schemas/Pet")
}

func TestGetSchemaNotFound(t *testing.T) {
	sess, _ := newTestSession(t)

	result, _, err := sess.handleGetSchema(context.Background(), &mcp.CallToolRequest{}, getSchemaInput{Name: "Unknown"})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "Owner")
	assert.Contains(t, text.Text, "Pet")
}

func TestGetEndpoint(t *testing.T) {
	sess, _ := newTestSession(t)

	_, output, err := sess.handleGetEndpoint(context.Background(), &mcp.CallToolRequest{}, getEndpointInput{
		Method: "GET",
		Path:   "/pets",
	})
	require.NoError(t, err)

	assert.Equal(t, "get", output.Method)
	assert.Equal(t, "/pets", output.Path)
	assert.Equal(t, "listPets", output.OperationID)
	assert.NotEmpty(t, output.BaseURL)
	// The response schema's Pet reference is expanded.
	assert.Contains(t, output.Definition, "owner")
	assert.NotContains(t, output.Definition, "$ref")
}

func TestGetEndpointNotFound(t *testing.T) {
	sess, _ := newTestSession(t)

	result, _, err := sess.handleGetEndpoint(context.Background(), &mcp.CallToolRequest{}, getEndpointInput{
		Method: "delete",
		Path:   "/pets",
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
