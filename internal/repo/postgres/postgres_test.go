package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/geocoder89/fittrack/internal/domain/user"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"chicken", "chicken"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
	}

	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsUniqueViolation(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	if !IsUniqueViolation(dup) {
		t.Fatalf("expected wrapped 23505 to be a unique violation")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatalf("foreign key violation is not a unique violation")
	}
	if IsUniqueViolation(errors.New("boom")) {
		t.Fatalf("plain error is not a unique violation")
	}
}

func TestOwnerMissing(t *testing.T) {
	fk := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})
	if err := ownerMissing(fk); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected user.ErrNotFound for a dangling user_id, got %v", err)
	}

	other := &pgconn.PgError{Code: "23514"}
	if err := ownerMissing(other); err != other {
		t.Fatalf("other errors must pass through, got %v", err)
	}
	if err := ownerMissing(nil); err != nil {
		t.Fatalf("nil stays nil, got %v", err)
	}
}
