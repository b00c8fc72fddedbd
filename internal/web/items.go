package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/erazemk/sickfits/internal/model"
	"github.com/erazemk/sickfits/internal/store"
)

type itemsPage struct {
	PageData
	Items []itemView
	Page  int
	Pages int
	Count int
}

// Prev and Next are zero when there is no such page.
func (p *itemsPage) Prev() int {
	if p.Page <= 1 {
		return 0
	}
	return p.Page - 1
}

func (p *itemsPage) Next() int {
	if p.Page >= p.Pages {
		return 0
	}
	return p.Page + 1
}

// ItemsPage handles GET /items.
func (s *Server) ItemsPage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage := store.DefaultPageSize

	data := &itemsPage{PageData: s.page(r, "Shop"), Page: page}

	var count struct {
		ItemsConnection struct {
			Aggregate struct{ Count int }
		}
	}
	if err := s.Client.Do(r.Context(), paginationQuery, nil, &count); err != nil {
		slog.Error("failed to count items", "error", err)
		data.Errors = ErrorMessages(err)
	}
	data.Count = count.ItemsConnection.Aggregate.Count
	data.Pages = max((data.Count+perPage-1)/perPage, 1)
	// Past the last page, show the last page.
	if page > data.Pages {
		page = data.Pages
		data.Page = page
	}

	var list struct{ Items []itemView }
	err = s.Client.Do(r.Context(), allItemsQuery, map[string]any{
		"skip":  (page - 1) * perPage,
		"first": perPage,
	}, &list)
	if err != nil {
		slog.Error("failed to list items", "error", err)
		data.Errors = ErrorMessages(err)
	}
	data.Items = list.Items
	data.Title = fmt.Sprintf("Page %d of %d", page, data.Pages)

	s.Templates.Render(w, "items.html", data)
}

type itemPage struct {
	PageData
	Item      *itemView
	CanUpdate bool
	CanDelete bool
}

// ItemPage handles GET /item?id=.
func (s *Server) ItemPage(w http.ResponseWriter, r *http.Request) {
	s.renderItem(w, r, r.URL.Query().Get("id"), nil)
}

func (s *Server) renderItem(w http.ResponseWriter, r *http.Request, id string, errs []string) {
	data := &itemPage{PageData: s.page(r, "Item")}
	data.Errors = errs

	var out struct{ Item *itemView }
	if err := s.Client.Do(r.Context(), singleItemQuery, map[string]any{"id": id}, &out); err != nil {
		data.Errors = append(data.Errors, ErrorMessages(err)...)
		s.Templates.RenderStatus(w, http.StatusBadRequest, "item.html", data)
		return
	}
	if out.Item == nil {
		data.Errors = append(data.Errors, fmt.Sprintf("No Item Found for %s", id))
		s.Templates.RenderStatus(w, http.StatusNotFound, "item.html", data)
		return
	}

	data.Item = out.Item
	data.Title = out.Item.Title
	data.CanUpdate = canModify(data.Me, out.Item, model.PermissionItemUpdate)
	data.CanDelete = canModify(data.Me, out.Item, model.PermissionItemDelete)
	s.Templates.Render(w, "item.html", data)
}

// canModify mirrors the rule enforced by the item mutation that needs perm:
// owners, admins and holders of perm pass.
func canModify(me *meView, item *itemView, perm string) bool {
	if me == nil {
		return false
	}
	if item.User != nil && item.User.ID == me.ID {
		return true
	}
	return me.hasAny(model.PermissionAdmin, perm)
}

// DeleteSubmit handles POST /delete?id=.
func (s *Server) DeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	if err := s.Client.Do(r.Context(), deleteItemMutation, map[string]any{"id": id}, nil); err != nil {
		slog.Warn("delete failed", "item", id, "error", err)
		s.renderItem(w, r, id, ErrorMessages(err))
		return
	}
	http.Redirect(w, r, "/items", http.StatusSeeOther)
}

func itemURL(id string) string {
	return "/item?id=" + url.QueryEscape(id)
}
