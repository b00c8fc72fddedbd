package auth

import (
	"context"
	"net/http/httptest"
	"testing"
)

func TestSessionSetToken(t *testing.T) {
	rec := httptest.NewRecorder()
	s := NewSession(rec, true)

	s.SetToken("signed", 5)

	if !s.LoggedIn() || s.UserID != 5 {
		t.Errorf("expected session for user 5, got %+v", s)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != CookieName || c.Value != "signed" {
		t.Errorf("unexpected cookie %s=%s", c.Name, c.Value)
	}
	if !c.HttpOnly {
		t.Error("expected HttpOnly cookie")
	}
	if !c.Secure {
		t.Error("expected Secure cookie")
	}
	if c.MaxAge != 365*24*60*60 {
		t.Errorf("expected one-year max age, got %d", c.MaxAge)
	}
}

func TestSessionClear(t *testing.T) {
	rec := httptest.NewRecorder()
	s := NewSession(rec, false)
	s.UserID = 3

	s.Clear()

	if s.LoggedIn() {
		t.Error("expected session to be anonymous")
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Errorf("expected an expiring cookie, got %+v", cookies)
	}
}

func TestUserIDFromContext(t *testing.T) {
	if _, ok := UserIDFrom(context.Background()); ok {
		t.Error("expected no user on a bare context")
	}

	anon := WithSession(context.Background(), NewSession(nil, false))
	if _, ok := UserIDFrom(anon); ok {
		t.Error("expected no user on an anonymous session")
	}

	s := &Session{UserID: 9}
	id, ok := UserIDFrom(WithSession(context.Background(), s))
	if !ok || id != 9 {
		t.Errorf("expected user 9, got %d %v", id, ok)
	}
}

func TestSessionWithoutWriter(t *testing.T) {
	s := NewSession(nil, false)
	s.SetToken("x", 1)
	s.Clear()

	if s.LoggedIn() {
		t.Error("expected cleared session")
	}
}
