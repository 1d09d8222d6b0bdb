package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestDedupIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	got := dedupIDs([]uuid.UUID{a, b, a, b, a})
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("expected [%s %s], got %v", a, b, got)
	}

	if got := dedupIDs(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503"}
	if !isForeignKeyViolation(fmt.Errorf("insert: %w", fk)) {
		t.Fatal("expected wrapped FK violation to match")
	}
	if isForeignKeyViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("unique violation must not match")
	}
	if isForeignKeyViolation(errors.New("plain")) {
		t.Fatal("plain error must not match")
	}
}
