// Package graph implements the storefront GraphQL API: item and account
// mutations, storefront queries, and an in-process client.
package graph

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/erazemk/sickfits/internal/auth"
	"github.com/erazemk/sickfits/internal/mail"
)

//go:embed schema.graphql
var schemaSDL string

// mailTimeout bounds a background reset email.
const mailTimeout = 30 * time.Second

// Resolver is the root resolver for both queries and mutations.
type Resolver struct {
	DB          *sql.DB
	Secret      string
	Mailer      mail.Mailer
	FrontendURL string

	// Now is the clock used for reset token expiry. Defaults to time.Now.
	Now func() time.Time

	mailWG sync.WaitGroup
}

// NewSchema parses the schema and binds it to r.
func NewSchema(r *Resolver) (*graphql.Schema, error) {
	if r.Now == nil {
		r.Now = time.Now
	}
	if r.Mailer == nil {
		r.Mailer = mail.LogMailer{}
	}
	schema, err := graphql.ParseSchema(schemaSDL, r, graphql.MaxDepth(12))
	if err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	return schema, nil
}

// Wait blocks until background emails have been handed off.
func (r *Resolver) Wait() {
	r.mailWG.Wait()
}

// sendMail delivers msg in the background. Failures are logged; the mutation
// that queued the message has already succeeded.
func (r *Resolver) sendMail(ctx context.Context, msg mail.Message) {
	ctx = context.WithoutCancel(ctx)
	r.mailWG.Add(1)
	go func() {
		defer r.mailWG.Done()
		ctx, cancel := context.WithTimeout(ctx, mailTimeout)
		defer cancel()
		if err := r.Mailer.Send(ctx, msg); err != nil {
			slog.Error("failed to send email", "to", msg.To, "subject", msg.Subject, "error", err)
		}
	}()
}

// startSession signs a token for userID and sets it as the session cookie.
func (r *Resolver) startSession(ctx context.Context, userID int64) error {
	token, err := auth.GenerateToken(r.Secret, userID)
	if err != nil {
		return err
	}
	if s := auth.SessionFrom(ctx); s != nil {
		s.SetToken(token, userID)
	}
	return nil
}

func parseID(id graphql.ID) (int64, error) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid id %q", string(id))
	}
	return n, nil
}

func formatID(id int64) graphql.ID {
	return graphql.ID(strconv.FormatInt(id, 10))
}
