package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"
)

// Client executes documents against a schema in-process.
type Client struct {
	Schema *graphql.Schema
}

// Do runs query with variables and decodes the data object into out. Request
// failures are returned as *TransportError, resolver failures as *Error.
func (c *Client) Do(ctx context.Context, query string, variables map[string]any, out any) error {
	vars, err := jsonVariables(variables)
	if err != nil {
		return err
	}

	resp := c.Schema.Exec(ctx, query, "", vars)

	if len(resp.Errors) > 0 {
		if RequestFailed(resp.Errors) {
			return &TransportError{StatusCode: http.StatusBadRequest, Errors: messages(resp.Errors)}
		}
		return &Error{Messages: messages(resp.Errors)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// jsonVariables converts variables to the shapes a JSON request body decodes
// into, so numbers arrive as float64 exactly as they do over HTTP.
func jsonVariables(variables map[string]any) (map[string]any, error) {
	if variables == nil {
		return nil, nil
	}
	data, err := json.Marshal(variables)
	if err != nil {
		return nil, fmt.Errorf("encoding variables: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("encoding variables: %w", err)
	}
	return out, nil
}
