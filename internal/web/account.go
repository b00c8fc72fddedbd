package web

import (
	"log/slog"
	"net/http"
)

// Forms on the sign up page.
const (
	formSignup  = "signup"
	formSignin  = "signin"
	formRequest = "request-reset"
)

type signupPage struct {
	PageData
	Form  string
	Email string
	Name  string
}

// SignupPage handles GET /signup. It holds the sign up, sign in and
// password reset request forms.
func (s *Server) SignupPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "signup.html", &signupPage{PageData: s.page(r, "Sign Up")})
}

// SignupSubmit handles POST /signup.
func (s *Server) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	email, name := r.FormValue("email"), r.FormValue("name")
	err := s.Client.Do(r.Context(), signupMutation, map[string]any{
		"email":    email,
		"name":     name,
		"password": r.FormValue("password"),
	}, nil)
	if err != nil {
		s.accountFailed(w, r, &signupPage{Form: formSignup, Email: email, Name: name}, err)
		return
	}
	http.Redirect(w, r, "/items", http.StatusSeeOther)
}

// SigninSubmit handles POST /signin.
func (s *Server) SigninSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	err := s.Client.Do(r.Context(), signinMutation, map[string]any{
		"email":    email,
		"password": r.FormValue("password"),
	}, nil)
	if err != nil {
		s.accountFailed(w, r, &signupPage{Form: formSignin, Email: email}, err)
		return
	}
	http.Redirect(w, r, "/items", http.StatusSeeOther)
}

// SignoutSubmit handles POST /signout.
func (s *Server) SignoutSubmit(w http.ResponseWriter, r *http.Request) {
	if err := s.Client.Do(r.Context(), signoutMutation, nil, nil); err != nil {
		slog.Error("signout failed", "error", err)
	}
	http.Redirect(w, r, "/items", http.StatusSeeOther)
}

// RequestResetSubmit handles POST /request-reset.
func (s *Server) RequestResetSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	data := &signupPage{Form: formRequest, Email: email}

	if err := s.Client.Do(r.Context(), requestResetMutation, map[string]any{"email": email}, nil); err != nil {
		s.accountFailed(w, r, data, err)
		return
	}

	data.PageData = s.page(r, "Sign Up")
	data.Success = "Success! Check your email for a reset link!"
	s.Templates.Render(w, "signup.html", data)
}

func (s *Server) accountFailed(w http.ResponseWriter, r *http.Request, data *signupPage, err error) {
	slog.Warn("account form failed", "form", data.Form, "error", err)
	data.PageData = s.page(r, "Sign Up")
	data.Errors = ErrorMessages(err)
	s.Templates.Render(w, "signup.html", data)
}

type resetPage struct {
	PageData
	ResetToken string
}

// ResetPage handles GET /reset?resetToken=.
func (s *Server) ResetPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "reset.html", &resetPage{
		PageData:   s.page(r, "Reset Your Password"),
		ResetToken: r.URL.Query().Get("resetToken"),
	})
}

// ResetSubmit handles POST /reset. A successful reset signs the user in.
func (s *Server) ResetSubmit(w http.ResponseWriter, r *http.Request) {
	token := r.FormValue("resetToken")
	err := s.Client.Do(r.Context(), resetMutation, map[string]any{
		"resetToken":      token,
		"password":        r.FormValue("password"),
		"confirmPassword": r.FormValue("confirmPassword"),
	}, nil)
	if err != nil {
		slog.Warn("password reset failed", "error", err)
		data := &resetPage{PageData: s.page(r, "Reset Your Password"), ResetToken: token}
		data.Errors = ErrorMessages(err)
		s.Templates.Render(w, "reset.html", data)
		return
	}
	http.Redirect(w, r, "/items", http.StatusSeeOther)
}
