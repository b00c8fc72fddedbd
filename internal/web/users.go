package web

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/sickfits/internal/model"
)

const (
	allUsersQuery = `query ALL_USERS_QUERY {
  users { id name email permissions }
}`

	updatePermissionsMutation = `mutation UPDATE_PERMISSIONS_MUTATION($permissions: [Permission!]!, $userId: ID!) {
  updatePermissions(permissions: $permissions, userId: $userId) { id permissions }
}`
)

// allPermissions is the column order of the permissions table.
var allPermissions = []string{
	model.PermissionAdmin,
	model.PermissionUser,
	model.PermissionItemCreate,
	model.PermissionItemUpdate,
	model.PermissionItemDelete,
	model.PermissionPermissionUpdate,
}

type permissionsPage struct {
	PageData
	Users       []meView
	Permissions []string
}

// PermissionsPage handles GET /permissions.
func (s *Server) PermissionsPage(w http.ResponseWriter, r *http.Request) {
	s.renderPermissions(w, r, nil)
}

func (s *Server) renderPermissions(w http.ResponseWriter, r *http.Request, errs []string) {
	data := &permissionsPage{PageData: s.page(r, "Permissions"), Permissions: allPermissions}
	data.Errors = errs

	var out struct{ Users []meView }
	if err := s.Client.Do(r.Context(), allUsersQuery, nil, &out); err != nil {
		data.Errors = append(data.Errors, ErrorMessages(err)...)
	}
	data.Users = out.Users
	s.Templates.Render(w, "permissions.html", data)
}

// PermissionsSubmit handles POST /permissions?userId=. Checked boxes become
// the user's complete permission set.
func (s *Server) PermissionsSubmit(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if err := r.ParseForm(); err != nil {
		s.renderPermissions(w, r, []string{"invalid form"})
		return
	}

	perms := r.PostForm["permissions"]
	if perms == nil {
		perms = []string{}
	}

	err := s.Client.Do(r.Context(), updatePermissionsMutation, map[string]any{
		"permissions": perms,
		"userId":      userID,
	}, nil)
	if err != nil {
		slog.Warn("permission update failed", "target", userID, "error", err)
		s.renderPermissions(w, r, ErrorMessages(err))
		return
	}
	http.Redirect(w, r, "/permissions", http.StatusSeeOther)
}
