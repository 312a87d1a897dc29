package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specmcp/specmcp/specerrors"
)

const petstoreV3 = `openapi: "3.0.3"
info:
  title: Pet Store
  description: A sample pet store API
  version: "1.0.0"
servers:
  - url: https://api.example.com/v1
    description: Production
  - url: https://staging.example.com/v1
paths:
  /pets:
    get:
      operationId: listPets
      summary: List pets
      tags: [pets]
      responses:
        "200":
          description: OK
    post:
      operationId: createPet
      summary: Create a pet
      tags: [pets]
      responses:
        "201":
          description: Created
  /pets/{petId}:
    get:
      operationId: getPet
      summary: Get a pet by id
      deprecated: true
      responses:
        "200":
          description: OK
components:
  schemas:
    Pet:
      type: object
      properties:
        name:
          type: string
    Error:
      type: object
`

const petstoreV2 = `swagger: "2.0"
info:
  title: Legacy Store
  version: "0.9"
host: legacy.example.com
basePath: /api
schemes: [http, https]
paths:
  /items:
    get:
      operationId: listItems
      responses:
        "200":
          description: OK
definitions:
  Item:
    type: object
`

func TestParseV3(t *testing.T) {
	doc, err := Parse([]byte(petstoreV3))
	require.NoError(t, err)

	assert.Equal(t, VersionV3, doc.Version)
	assert.Equal(t, "Pet Store", doc.Title)
	assert.Equal(t, "1.0.0", doc.APIVersion)
	assert.Equal(t, "A sample pet store API", doc.Description)
	assert.Equal(t, "https://api.example.com/v1", doc.BaseURL)
	assert.Equal(t, "#/components/schemas/", doc.SchemaRefPrefix())

	eps := doc.Endpoints()
	require.Len(t, eps, 3)
	// Ordered by path, then by method order.
	assert.Equal(t, "get /pets", eps[0].Method+" "+eps[0].Path)
	assert.Equal(t, "post /pets", eps[1].Method+" "+eps[1].Path)
	assert.Equal(t, "get /pets/{petId}", eps[2].Method+" "+eps[2].Path)

	assert.Equal(t, "listPets", eps[0].OperationID)
	assert.Equal(t, []string{"pets"}, eps[0].Tags)
	assert.True(t, eps[2].Deprecated)

	assert.Equal(t, []string{"Error", "Pet"}, doc.SchemaNames())
	pet, ok := doc.Schema("Pet")
	require.True(t, ok)
	assert.Equal(t, "object", pet["type"])
}

func TestParseV2(t *testing.T) {
	doc, err := Parse([]byte(petstoreV2))
	require.NoError(t, err)

	assert.Equal(t, VersionV2, doc.Version)
	assert.Equal(t, "Legacy Store", doc.Title)
	assert.Equal(t, "http://legacy.example.com/api", doc.BaseURL)
	assert.Equal(t, "#/definitions/", doc.SchemaRefPrefix())

	require.Len(t, doc.Endpoints(), 1)
	assert.Equal(t, []string{"Item"}, doc.SchemaNames())
}

func TestParseV2NoSchemesDefaultsHTTPS(t *testing.T) {
	doc, err := Parse([]byte("swagger: \"2.0\"\nhost: api.example.com\npaths: {}\n"))
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", doc.BaseURL)
}

func TestParseV2NoHostEmptyBaseURL(t *testing.T) {
	doc, err := Parse([]byte("swagger: \"2.0\"\nbasePath: /api\npaths: {}\n"))
	require.NoError(t, err)
	assert.Empty(t, doc.BaseURL)
}

func TestParseJSONInput(t *testing.T) {
	doc, err := Parse([]byte(`{"openapi":"3.1.0","info":{"title":"JSON Doc","version":"1.0"},"paths":{}}`))
	require.NoError(t, err)
	assert.Equal(t, VersionV3, doc.Version)
	assert.Equal(t, "JSON Doc", doc.Title)
}

func TestParseUnknownVersion(t *testing.T) {
	cases := []struct {
		name string
		spec string
	}{
		{"no marker", "info:\n  title: Mystery\npaths: {}\n"},
		{"bad swagger marker", "swagger: \"1.2\"\npaths: {}\n"},
		{"bad openapi marker", "openapi: \"4.0.0\"\npaths: {}\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.spec))
			require.Error(t, err)
			assert.True(t, errors.Is(err, specerrors.ErrUnknownVersion))
		})
	}
}

func TestParseInvalidContent(t *testing.T) {
	_, err := Parse([]byte("not valid yaml: ["))
	require.Error(t, err)
	assert.False(t, errors.Is(err, specerrors.ErrUnknownVersion))
}

func TestEndpointLookup(t *testing.T) {
	doc, err := Parse([]byte(petstoreV3))
	require.NoError(t, err)

	ep, ok := doc.Endpoint("GET", "/pets")
	require.True(t, ok)
	assert.Equal(t, "listPets", ep.OperationID)

	_, ok = doc.Endpoint("delete", "/pets")
	assert.False(t, ok)

	_, ok = doc.Endpoint("get", "/missing")
	assert.False(t, ok)
}

func TestEndpointRawIsOperationObject(t *testing.T) {
	doc, err := Parse([]byte(petstoreV3))
	require.NoError(t, err)

	ep, ok := doc.Endpoint("post", "/pets")
	require.True(t, ok)
	assert.Equal(t, "createPet", ep.Raw()["operationId"])
}
