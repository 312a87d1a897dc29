package mcpserver

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testSpecTemplate is the fixture document; %s receives the fake API's
// base URL so execute_request targets the test server.
const testSpecTemplate = `openapi: "3.0.0"
info:
  title: Pet Store
  description: A sample pet store API
  version: "1.0.0"
servers:
  - url: %s
paths:
  /pets:
    get:
      operationId: listPets
      summary: List pets
      tags: [pets]
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: "#/components/schemas/Pet"
    post:
      operationId: createPet
      summary: Create a pet
      tags: [pets]
      requestBody:
        content:
          application/json:
            schema:
              $ref: "#/components/schemas/Pet"
      responses:
        "201":
          description: Created
  /pets/{petId}:
    get:
      operationId: getPet
      summary: Get a pet by id
      tags: [pets]
      parameters:
        - name: petId
          in: path
          required: true
          schema:
            type: string
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
        owner:
          $ref: "#/components/schemas/Owner"
        friend:
          $ref: "#/components/schemas/Pet"
    Owner:
      type: object
      properties:
        email:
          type: string
`

// apiRemote serves the fixture document plus a fake pet API, counting
// spec downloads and recording the last API request.
type apiRemote struct {
	specGets    atomic.Int64
	lastPath    string
	lastQuery   string
	lastAuth    string
	lastBody    string
	lastMethod  string
	apiResponse string
}

func (r *apiRemote) handler(baseURL func() string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path == "/spec.json" {
			w.Header().Set("ETag", `"v1"`)
			if req.Method == http.MethodGet {
				r.specGets.Add(1)
				fmt.Fprintf(w, testSpecTemplate, baseURL())
			}
			return
		}

		r.lastMethod = req.Method
		r.lastPath = req.URL.Path
		r.lastQuery = req.URL.RawQuery
		r.lastAuth = req.Header.Get("Authorization")
		body, _ := io.ReadAll(req.Body)
		r.lastBody = string(body)

		response := r.apiResponse
		if response == "" {
			response = `{"ok":true}`
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	})
}

// newTestSession wires a session against a fake remote serving the
// fixture document.
func newTestSession(t *testing.T) (*session, *apiRemote) {
	t.Helper()

	remote := &apiRemote{}
	var srv *httptest.Server
	srv = httptest.NewServer(remote.handler(func() string { return srv.URL }))
	t.Cleanup(srv.Close)

	cfg := &serverConfig{
		SpecURL:         srv.URL + "/spec.json",
		BearerToken:     "test-token",
		CacheDir:        t.TempDir(),
		CacheEnabled:    true,
		ListLimit:       100,
		SearchLimit:     20,
		MaxLimit:        500,
		HTTPTimeout:     10 * time.Second,
		AllowPrivateIPs: true,
	}
	sess, err := newSession(cfg)
	require.NoError(t, err)
	return sess, remote
}
