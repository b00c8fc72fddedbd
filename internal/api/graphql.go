package api

import (
	"mime"
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/erazemk/sickfits/internal/graph"
)

// maxQuerySize bounds a GraphQL request body.
const maxQuerySize = 1 << 20

// GraphQLHandler serves POST /api/graphql.
type GraphQLHandler struct {
	Schema *graphql.Schema
}

type graphqlRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// ServeHTTP executes one GraphQL document. Resolver errors are reported with
// status 200 next to the data; documents that fail to parse or validate get
// status 400.
func (h *GraphQLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		graphqlError(w, http.StatusUnsupportedMediaType, "content type must be application/json")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxQuerySize)
	var req graphqlRequest
	if err := decodeJSON(r, &req); err != nil {
		graphqlError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		graphqlError(w, http.StatusBadRequest, "query required")
		return
	}

	resp := h.Schema.Exec(r.Context(), req.Query, req.OperationName, req.Variables)

	status := http.StatusOK
	if len(resp.Errors) > 0 && graph.RequestFailed(resp.Errors) {
		status = http.StatusBadRequest
	}
	jsonResponse(w, status, resp)
}
