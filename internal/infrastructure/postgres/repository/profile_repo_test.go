package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "translated gorm error",
			err:  gorm.ErrDuplicatedKey,
			want: true,
		},
		{
			name: "wrapped gorm error",
			err:  fmt.Errorf("create profile: %w", gorm.ErrDuplicatedKey),
			want: true,
		},
		{
			name: "raw driver unique violation",
			err: &pgconn.PgError{
				Code:           "23505",
				ConstraintName: "seller_profile_models_user_id_key",
			},
			want: true,
		},
		{
			name: "wrapped driver unique violation",
			err:  fmt.Errorf("create profile: %w", &pgconn.PgError{Code: "23505"}),
			want: true,
		},
		{
			name: "other driver error",
			err:  &pgconn.PgError{Code: "23503"},
			want: false,
		},
		{
			name: "record not found",
			err:  gorm.ErrRecordNotFound,
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection refused"),
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isDuplicateKey(tc.err))
		})
	}
}
