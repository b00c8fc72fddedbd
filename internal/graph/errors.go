package graph

import (
	"errors"
	"fmt"
	"strings"

	gqlerrors "github.com/graph-gophers/graphql-go/errors"
)

// Failures reported to clients as GraphQL error messages.
var (
	ErrNotLoggedIn       = errors.New("you must be logged in to do that")
	ErrNoPermission      = errors.New("you don't have permission to do that")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrResetTokenInvalid = errors.New("this reset token is invalid or expired")
	ErrItemNotFound      = errors.New("item not found")
	ErrNegativePrice     = errors.New("price must not be negative")
)

type noSuchUserError struct {
	email string
}

func (e *noSuchUserError) Error() string {
	return fmt.Sprintf("no such user found for email %s", e.email)
}

// IsNoSuchUser reports whether err is an unknown-account failure.
func IsNoSuchUser(err error) bool {
	var e *noSuchUserError
	return errors.As(err, &e)
}

// GraphQLErrorPrefix is prepended to each resolver failure by Error.
const GraphQLErrorPrefix = "GraphQL error: "

// Error is returned by Client when resolvers failed. Its message carries one
// "GraphQL error: " line per failure.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	lines := make([]string, len(e.Messages))
	for i, m := range e.Messages {
		lines[i] = GraphQLErrorPrefix + m
	}
	return strings.Join(lines, "\n")
}

// TransportError is returned by Client when the request itself was rejected,
// e.g. the document failed to parse or validate. Errors holds one entry per
// reported problem.
type TransportError struct {
	StatusCode int
	Errors     []string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("Network error: Response not successful: Received status code %d", e.StatusCode)
}

// RequestFailed reports whether errs describe a request-level failure rather
// than resolver errors. Resolver errors always carry a field path.
func RequestFailed(errs []*gqlerrors.QueryError) bool {
	for _, e := range errs {
		if len(e.Path) == 0 {
			return true
		}
	}
	return false
}

func messages(errs []*gqlerrors.QueryError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Message
	}
	return out
}
