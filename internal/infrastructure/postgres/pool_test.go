package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	repo "github.com/oksasatya/planify/internal/domain/repository"
)

func TestParseID(t *testing.T) {
	for _, id := range []string{"", "nope", "1234", "665f1c2b9d3e4a0012345678"} {
		if _, err := parseID(id); !errors.Is(err, repo.ErrNotFound) {
			t.Fatalf("%q: want ErrNotFound, got %v", id, err)
		}
	}
	want := uuid.New()
	got, err := parseID(want.String())
	if err != nil || got != want {
		t.Fatalf("valid id: %v %v", got, err)
	}
}

func TestTranslate(t *testing.T) {
	other := errors.New("connection reset")
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, repo.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), repo.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, repo.ErrDuplicate},
		{"other constraint", &pgconn.PgError{Code: "23503"}, nil},
		{"other", other, other},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := translate(tc.in)
			switch {
			case tc.name == "other constraint":
				if errors.Is(got, repo.ErrDuplicate) || errors.Is(got, repo.ErrNotFound) {
					t.Fatalf("foreign key error must pass through, got %v", got)
				}
			case !errors.Is(got, tc.want):
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestAssignee(t *testing.T) {
	if got, err := assignee(""); got != nil || err != nil {
		t.Fatalf("blank assignee must be NULL: %v %v", got, err)
	}
	if _, err := assignee("someone"); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("malformed assignee: want ErrNotFound, got %v", err)
	}
	id := uuid.New()
	if got, err := assignee(id.String()); err != nil || got == nil || *got != id {
		t.Fatalf("valid assignee: %v %v", got, err)
	}
}

func TestStackNeverNil(t *testing.T) {
	if s := stack(nil); s == nil || len(s) != 0 {
		t.Fatalf("want empty slice, got %#v", s)
	}
	if s := stack([]string{"Go"}); len(s) != 1 || s[0] != "Go" {
		t.Fatalf("unexpected %v", s)
	}
}
