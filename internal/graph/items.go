package graph

import (
	"context"
	"log/slog"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/erazemk/sickfits/internal/model"
	"github.com/erazemk/sickfits/internal/store"
)

type createItemArgs struct {
	Title       string
	Description string
	Price       int32
	Image       *string
	LargeImage  *string
}

type updateItemArgs struct {
	ID          graphql.ID
	Title       *string
	Description *string
	Price       *int32
	Image       *string
	LargeImage  *string
}

// itemUpdate copies the replaceable fields of args. The id is the row
// selector and is deliberately not part of the result.
func (args updateItemArgs) itemUpdate() model.ItemUpdate {
	upd := model.ItemUpdate{
		Title:       args.Title,
		Description: args.Description,
		Image:       args.Image,
		LargeImage:  args.LargeImage,
	}
	if args.Price != nil {
		p := int(*args.Price)
		upd.Price = &p
	}
	return upd
}

// CreateItem handles the createItem mutation.
func (r *Resolver) CreateItem(ctx context.Context, args createItemArgs) (*itemResolver, error) {
	userID, err := r.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if args.Price < 0 {
		return nil, ErrNegativePrice
	}

	item, err := store.CreateItem(ctx, r.DB, &model.Item{
		Title:       args.Title,
		Description: args.Description,
		Price:       int(args.Price),
		Image:       deref(args.Image),
		LargeImage:  deref(args.LargeImage),
		UserID:      userID,
	})
	if err != nil {
		slog.Error("failed to create item", "error", err)
		return nil, err
	}

	slog.Info("item created", "user", userID, "item", item.ID, "title", item.Title)
	return &itemResolver{r: r, item: item}, nil
}

// UpdateItem handles the updateItem mutation.
func (r *Resolver) UpdateItem(ctx context.Context, args updateItemArgs) (*itemResolver, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}
	upd := args.itemUpdate()
	if upd.Price != nil && *upd.Price < 0 {
		return nil, ErrNegativePrice
	}

	if _, err := r.authorizeItem(ctx, id, model.PermissionItemUpdate); err != nil {
		return nil, err
	}

	ok, err := store.UpdateItem(ctx, r.DB, id, upd)
	if err != nil {
		slog.Error("failed to update item", "item", id, "error", err)
		return nil, err
	}
	if !ok {
		return nil, ErrItemNotFound
	}

	item, err := store.GetItem(ctx, r.DB, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return &itemResolver{r: r, item: item}, nil
}

// DeleteItem handles the deleteItem mutation. It returns the deleted item.
func (r *Resolver) DeleteItem(ctx context.Context, args struct{ ID graphql.ID }) (*itemResolver, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}

	item, err := r.authorizeItem(ctx, id, model.PermissionItemDelete)
	if err != nil {
		return nil, err
	}

	if err := store.DeleteItem(ctx, r.DB, id); err != nil {
		slog.Error("failed to delete item", "item", id, "error", err)
		return nil, err
	}

	slog.Info("item deleted", "item", id, "title", item.Title)
	return &itemResolver{r: r, item: item}, nil
}

// authorizeItem loads the item and checks that the current user owns it or
// holds ADMIN or perm.
func (r *Resolver) authorizeItem(ctx context.Context, id int64, perm string) (*model.Item, error) {
	userID, err := r.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	item, err := store.GetItem(ctx, r.DB, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	if item.UserID == userID {
		return item, nil
	}

	user, err := store.GetUser(ctx, r.DB, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasAnyPermission(model.PermissionAdmin, perm) {
		slog.Warn("item access denied", "user", userID, "item", id, "permission", perm)
		return nil, ErrNoPermission
	}
	return item, nil
}

// Items handles the items query.
func (r *Resolver) Items(ctx context.Context, args struct {
	Skip  *int32
	First *int32
}) ([]*itemResolver, error) {
	skip, first := 0, store.DefaultPageSize
	if args.Skip != nil {
		skip = int(*args.Skip)
	}
	if args.First != nil {
		first = int(*args.First)
	}

	items, err := store.ListItems(ctx, r.DB, skip, first)
	if err != nil {
		return nil, err
	}

	out := make([]*itemResolver, len(items))
	for i := range items {
		out[i] = &itemResolver{r: r, item: &items[i]}
	}
	return out, nil
}

// Item handles the item query.
func (r *Resolver) Item(ctx context.Context, args struct{ ID graphql.ID }) (*itemResolver, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}
	item, err := store.GetItem(ctx, r.DB, id)
	if err != nil || item == nil {
		return nil, err
	}
	return &itemResolver{r: r, item: item}, nil
}

// ItemsConnection handles the itemsConnection query.
func (r *Resolver) ItemsConnection(ctx context.Context) (*itemConnectionResolver, error) {
	count, err := store.CountItems(ctx, r.DB)
	if err != nil {
		return nil, err
	}
	return &itemConnectionResolver{count: count}, nil
}

type itemResolver struct {
	r    *Resolver
	item *model.Item
}

func (i *itemResolver) ID() graphql.ID      { return formatID(i.item.ID) }
func (i *itemResolver) Title() string       { return i.item.Title }
func (i *itemResolver) Description() string { return i.item.Description }
func (i *itemResolver) Price() int32        { return int32(i.item.Price) }
func (i *itemResolver) Image() *string      { return optional(i.item.Image) }
func (i *itemResolver) LargeImage() *string { return optional(i.item.LargeImage) }

func (i *itemResolver) User(ctx context.Context) (*userResolver, error) {
	if i.item.UserID == 0 {
		return nil, nil
	}
	u, err := store.GetUser(ctx, i.r.DB, i.item.UserID)
	if err != nil || u == nil {
		return nil, err
	}
	return &userResolver{user: u}, nil
}

type itemConnectionResolver struct {
	count int
}

func (c *itemConnectionResolver) Aggregate() *aggregateResolver {
	return &aggregateResolver{count: c.count}
}

type aggregateResolver struct {
	count int
}

func (a *aggregateResolver) Count() int32 { return int32(a.count) }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
