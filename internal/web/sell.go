package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/erazemk/sickfits/internal/auth"
	"github.com/erazemk/sickfits/internal/blob"
	"github.com/erazemk/sickfits/internal/imaging"
)

var errInvalidPrice = errors.New("price must be a whole number of cents")

// itemForm holds the item fields exactly as submitted, so a failed
// submission re-renders with the user's input.
type itemForm struct {
	Title       string
	Description string
	Price       string
	Image       string
	LargeImage  string
}

func itemFormFrom(r *http.Request) itemForm {
	return itemForm{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
	}
}

// parsePrice converts the price field from its string form.
func parsePrice(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errInvalidPrice
	}
	return n, nil
}

// createVariables builds the CREATE_ITEM_MUTATION variables.
func (f itemForm) createVariables() (map[string]any, error) {
	price, err := parsePrice(f.Price)
	if err != nil {
		return nil, err
	}
	vars := map[string]any{
		"title":       f.Title,
		"description": f.Description,
		"price":       price,
	}
	if f.Image != "" {
		vars["image"] = f.Image
		vars["largeImage"] = f.LargeImage
	}
	return vars, nil
}

type sellPage struct {
	PageData
	Form itemForm
}

// SellPage handles GET /sell and shows the empty form.
func (s *Server) SellPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "sell.html", &sellPage{PageData: s.page(r, "Sell")})
}

// SellSubmit handles POST /sell. Success navigates to the new item; any
// failure re-renders the form with the submitted values and the errors.
func (s *Server) SellSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(imaging.MaxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		s.sellFailed(w, r, itemForm{}, errors.New("file too large or invalid form"))
		return
	}

	form := itemFormFrom(r)

	vars, err := form.createVariables()
	if err != nil {
		s.sellFailed(w, r, form, err)
		return
	}

	if _, ok := auth.UserIDFrom(r.Context()); ok {
		image, large, err := s.saveUpload(r)
		if err != nil {
			s.sellFailed(w, r, form, err)
			return
		}
		if image != "" {
			vars["image"], vars["largeImage"] = image, large
		}
	}

	var out struct{ CreateItem struct{ ID string } }
	if err := s.Client.Do(r.Context(), createItemMutation, vars, &out); err != nil {
		s.sellFailed(w, r, form, err)
		return
	}

	http.Redirect(w, r, itemURL(out.CreateItem.ID), http.StatusSeeOther)
}

func (s *Server) sellFailed(w http.ResponseWriter, r *http.Request, form itemForm, err error) {
	slog.Warn("sell failed", "error", err)
	data := &sellPage{PageData: s.page(r, "Sell"), Form: form}
	data.Errors = ErrorMessages(err)
	s.Templates.Render(w, "sell.html", data)
}

// saveUpload stores the optional "file" field. It returns empty URLs when no
// file was sent.
func (s *Server) saveUpload(r *http.Request) (string, string, error) {
	file, _, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", "", nil
	}
	if err != nil {
		return "", "", err
	}
	defer file.Close()

	return blob.SaveUpload(r.Context(), s.Images, file)
}
