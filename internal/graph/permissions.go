package graph

import (
	"context"
	"fmt"
	"log/slog"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/erazemk/sickfits/internal/model"
	"github.com/erazemk/sickfits/internal/store"
)

// requirePermission loads the current user and checks that they hold one of
// perms.
func (r *Resolver) requirePermission(ctx context.Context, perms ...string) (*model.User, error) {
	userID, err := r.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	user, err := store.GetUser(ctx, r.DB, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasAnyPermission(perms...) {
		return nil, ErrNoPermission
	}
	return user, nil
}

// Users handles the users query.
func (r *Resolver) Users(ctx context.Context) ([]*userResolver, error) {
	if _, err := r.requirePermission(ctx, model.PermissionAdmin, model.PermissionPermissionUpdate); err != nil {
		return nil, err
	}

	users, err := store.ListUsers(ctx, r.DB)
	if err != nil {
		return nil, err
	}
	out := make([]*userResolver, len(users))
	for i := range users {
		out[i] = &userResolver{user: &users[i]}
	}
	return out, nil
}

type updatePermissionsArgs struct {
	Permissions []string
	UserID      graphql.ID
}

// UpdatePermissions handles the updatePermissions mutation.
func (r *Resolver) UpdatePermissions(ctx context.Context, args updatePermissionsArgs) (*userResolver, error) {
	admin, err := r.requirePermission(ctx, model.PermissionAdmin, model.PermissionPermissionUpdate)
	if err != nil {
		return nil, err
	}

	id, err := parseID(args.UserID)
	if err != nil {
		return nil, err
	}
	for _, p := range args.Permissions {
		if !model.ValidPermission(p) {
			return nil, fmt.Errorf("unknown permission %q", p)
		}
	}

	if err := store.UpdatePermissions(ctx, r.DB, id, args.Permissions); err != nil {
		return nil, err
	}
	user, err := store.GetUser(ctx, r.DB, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("no user with id %s", args.UserID)
	}

	slog.Info("permissions updated", "user", admin.Email, "target", user.Email, "permissions", args.Permissions)
	return &userResolver{user: user}, nil
}
