package web

import (
	"errors"
	"reflect"
	"testing"

	"github.com/erazemk/sickfits/internal/graph"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{"nil", nil, nil},
		{"empty message", errors.New(""), nil},
		{
			"transport error lists each problem",
			&graph.TransportError{StatusCode: 400, Errors: []string{"GraphQL error: first", "second"}},
			[]string{"first", "second"},
		},
		{
			"transport error without list",
			&graph.TransportError{StatusCode: 500},
			[]string{"Network error: Response not successful: Received status code 500"},
		},
		{
			"resolver error",
			&graph.Error{Messages: []string{"invalid password"}},
			[]string{"invalid password"},
		},
		{
			"duplicate email",
			&graph.Error{Messages: []string{"creating user: constraint failed: UNIQUE constraint failed: users.email (2067)"}},
			[]string{duplicateEmailMessage},
		},
		{"plain error", errors.New("price must be a whole number of cents"), []string{"price must be a whole number of cents"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ErrorMessages(tt.err)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ErrorMessages() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		cents int
		want  string
	}{
		{0, "$0"},
		{5, "$0.05"},
		{1000, "$10"},
		{1050, "$10.50"},
		{123456789, "$1,234,567.89"},
		{-250, "-$2.50"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.cents); got != tt.want {
			t.Errorf("FormatMoney(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestParsePrice(t *testing.T) {
	if n, err := parsePrice(" 1500 "); err != nil || n != 1500 {
		t.Errorf("parsePrice(1500) = %d, %v", n, err)
	}
	for _, in := range []string{"", "abc", "10.5"} {
		if _, err := parsePrice(in); !errors.Is(err, errInvalidPrice) {
			t.Errorf("parsePrice(%q) should fail, got %v", in, err)
		}
	}
}
