package web

import (
	"errors"
	"strings"

	"github.com/erazemk/sickfits/internal/graph"
)

const (
	duplicateEmailViolation = "UNIQUE constraint failed: users.email"
	duplicateEmailMessage   = "It looks like we already have a user with that email address, please use a different email address."
)

// ErrorMessages turns a failed request into the blocks shown above a form.
// Rejected requests yield one block per reported problem; anything else
// yields a single block.
func ErrorMessages(err error) []string {
	if err == nil || err.Error() == "" {
		return nil
	}

	var te *graph.TransportError
	if errors.As(err, &te) && len(te.Errors) > 0 {
		out := make([]string, len(te.Errors))
		for i, m := range te.Errors {
			out[i] = stripPrefix(m)
		}
		return out
	}

	msg := err.Error()
	if strings.Contains(msg, duplicateEmailViolation) {
		msg = duplicateEmailMessage
	}
	return []string{stripPrefix(msg)}
}

func stripPrefix(msg string) string {
	return strings.Replace(msg, graph.GraphQLErrorPrefix, "", 1)
}
