package repository_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/accord/pkg/repository"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil passes through", nil, nil},
		{"no rows maps to not found", sql.ErrNoRows, errNotFound},
		{"unique violation maps to duplicate", &pgconn.PgError{Code: "23505"}, errDuplicate},
		{"foreign key violation maps to not found", &pgconn.PgError{Code: "23503"}, errNotFound},
		{
			"wrapped foreign key violation maps to not found",
			fmt.Errorf("insert approval: %w", &pgconn.PgError{Code: "23503"}),
			errNotFound,
		},
		{"other pg errors pass through", &pgconn.PgError{Code: "42P01"}, nil},
		{"unrelated errors pass through", errors.New("connection reset"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repository.MapError(tt.err, errNotFound, errDuplicate)

			if tt.want != nil {
				if !errors.Is(got, tt.want) {
					t.Errorf("MapError() = %v, want %v", got, tt.want)
				}
				return
			}
			if !errors.Is(got, tt.err) && got != nil {
				t.Errorf("MapError() = %v, want original error %v", got, tt.err)
			}
		})
	}
}
