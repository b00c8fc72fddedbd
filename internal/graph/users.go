package graph

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/erazemk/sickfits/internal/auth"
	"github.com/erazemk/sickfits/internal/mail"
	"github.com/erazemk/sickfits/internal/model"
	"github.com/erazemk/sickfits/internal/store"
)

type signupArgs struct {
	Email    string
	Password string
	Name     string
}

type signinArgs struct {
	Email    string
	Password string
}

type resetPasswordArgs struct {
	ResetToken      string
	Password        string
	ConfirmPassword string
}

// Signup handles the signup mutation.
func (r *Resolver) Signup(ctx context.Context, args signupArgs) (*userResolver, error) {
	email := model.NormalizeEmail(args.Email)
	if email == "" || strings.TrimSpace(args.Name) == "" {
		return nil, errors.New("name and email required")
	}
	if err := model.ValidatePassword(args.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(args.Password)
	if err != nil {
		return nil, err
	}

	// A duplicate email surfaces the store's unique constraint message; the
	// storefront rewrites it for display.
	user, err := store.CreateUser(ctx, r.DB, strings.TrimSpace(args.Name), email, hash, model.DefaultPermissions)
	if err != nil {
		return nil, err
	}

	if err := r.startSession(ctx, user.ID); err != nil {
		return nil, err
	}

	slog.Info("user signed up", "user", user.Email)
	return &userResolver{user: user}, nil
}

// Signin handles the signin mutation.
func (r *Resolver) Signin(ctx context.Context, args signinArgs) (*userResolver, error) {
	email := model.NormalizeEmail(args.Email)

	user, err := store.GetUserByEmail(ctx, r.DB, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &noSuchUserError{email: email}
	}

	if !auth.CheckPassword(user.PasswordHash, args.Password) {
		slog.Warn("signin failed", "user", email)
		return nil, ErrInvalidPassword
	}

	if err := r.startSession(ctx, user.ID); err != nil {
		return nil, err
	}

	slog.Info("user signed in", "user", user.Email)
	return &userResolver{user: user}, nil
}

// Signout handles the signout mutation. The presented token is revoked so a
// copied cookie stops working too.
func (r *Resolver) Signout(ctx context.Context) (*successMessage, error) {
	if s := auth.SessionFrom(ctx); s != nil {
		if s.TokenID != "" {
			if err := store.RevokeToken(ctx, r.DB, s.TokenID, s.ExpiresAt); err != nil {
				slog.Error("failed to revoke token", "error", err)
			}
		}
		s.Clear()
	}
	return &successMessage{message: "Goodbye!"}, nil
}

// RequestReset handles the requestReset mutation.
func (r *Resolver) RequestReset(ctx context.Context, args struct{ Email string }) (*successMessage, error) {
	email := model.NormalizeEmail(args.Email)

	user, err := store.GetUserByEmail(ctx, r.DB, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &noSuchUserError{email: email}
	}

	token, err := auth.GenerateResetToken()
	if err != nil {
		return nil, err
	}
	if err := store.SetResetToken(ctx, r.DB, user.ID, token, r.Now().Add(auth.ResetTokenTTL)); err != nil {
		return nil, err
	}

	msg, err := mail.PasswordReset(user.Email, user.Name, mail.ResetLink(r.FrontendURL, token))
	if err != nil {
		return nil, err
	}
	r.sendMail(ctx, msg)

	slog.Info("password reset requested", "user", user.Email)
	return &successMessage{message: "Thanks!"}, nil
}

// ResetPassword handles the resetPassword mutation.
func (r *Resolver) ResetPassword(ctx context.Context, args resetPasswordArgs) (*userResolver, error) {
	if args.Password != args.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	user, err := store.GetUserByResetToken(ctx, r.DB, args.ResetToken, r.Now())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrResetTokenInvalid
	}

	if err := model.ValidatePassword(args.Password); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(args.Password)
	if err != nil {
		return nil, err
	}
	if err := store.ResetPassword(ctx, r.DB, user.ID, hash); err != nil {
		return nil, err
	}

	updated, err := store.GetUser(ctx, r.DB, user.ID)
	if err != nil {
		return nil, err
	}

	if err := r.startSession(ctx, user.ID); err != nil {
		return nil, err
	}

	slog.Info("password reset", "user", user.Email)
	return &userResolver{user: updated}, nil
}

// Me handles the me query: the signed-in user, or null.
func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	userID, ok := auth.UserIDFrom(ctx)
	if !ok {
		return nil, nil
	}
	user, err := store.GetUser(ctx, r.DB, userID)
	if err != nil || user == nil {
		return nil, err
	}
	return &userResolver{user: user}, nil
}

func (r *Resolver) requireUser(ctx context.Context) (int64, error) {
	userID, ok := auth.UserIDFrom(ctx)
	if !ok {
		return 0, ErrNotLoggedIn
	}
	return userID, nil
}

type userResolver struct {
	user *model.User
}

func (u *userResolver) ID() graphql.ID        { return formatID(u.user.ID) }
func (u *userResolver) Name() string          { return u.user.Name }
func (u *userResolver) Email() string         { return u.user.Email }
func (u *userResolver) Permissions() []string { return u.user.Permissions }

type successMessage struct {
	message string
}

func (m *successMessage) Message() *string { return &m.message }
