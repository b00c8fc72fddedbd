package web

import (
	"log/slog"
	"net/http"
	"strconv"
)

type updatePage struct {
	PageData
	ID   string
	Form itemForm
}

// UpdatePage handles GET /update?id=.
func (s *Server) UpdatePage(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	data := &updatePage{PageData: s.page(r, "Update Item"), ID: id}

	var out struct{ Item *itemView }
	if err := s.Client.Do(r.Context(), singleItemQuery, map[string]any{"id": id}, &out); err != nil {
		data.Errors = ErrorMessages(err)
		s.Templates.RenderStatus(w, http.StatusBadRequest, "update.html", data)
		return
	}
	if out.Item == nil {
		data.Errors = []string{"No Item Found for " + id}
		s.Templates.RenderStatus(w, http.StatusNotFound, "update.html", data)
		return
	}

	data.Form = itemForm{
		Title:       out.Item.Title,
		Description: out.Item.Description,
		Price:       strconv.Itoa(out.Item.Price),
	}
	s.Templates.Render(w, "update.html", data)
}

// UpdateSubmit handles POST /update?id=. Only non-empty fields are sent.
func (s *Server) UpdateSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	form := itemFormFrom(r)

	vars := map[string]any{"id": id}
	if form.Title != "" {
		vars["title"] = form.Title
	}
	if form.Description != "" {
		vars["description"] = form.Description
	}
	if form.Price != "" {
		price, err := parsePrice(form.Price)
		if err != nil {
			s.updateFailed(w, r, id, form, err)
			return
		}
		vars["price"] = price
	}

	if err := s.Client.Do(r.Context(), updateItemMutation, vars, nil); err != nil {
		s.updateFailed(w, r, id, form, err)
		return
	}

	http.Redirect(w, r, itemURL(id), http.StatusSeeOther)
}

func (s *Server) updateFailed(w http.ResponseWriter, r *http.Request, id string, form itemForm, err error) {
	slog.Warn("update failed", "item", id, "error", err)
	data := &updatePage{PageData: s.page(r, "Update Item"), ID: id, Form: form}
	data.Errors = ErrorMessages(err)
	s.Templates.Render(w, "update.html", data)
}
