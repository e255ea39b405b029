package postgres

import (
	"context"
	"errors"
	"testing"

	"eventsplatform/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestStore_WithTx(t *testing.T) {
	ctx := context.Background()
	errBoom := errors.New("boom")

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		fn      func(ctx context.Context, repos domain.Repositories) error
		wantErr error
	}{
		{
			name: "commits when fn succeeds",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM event_enrollments`).
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				mock.ExpectCommit()
			},
			fn: func(ctx context.Context, repos domain.Repositories) error {
				_, err := repos.Enrollments().CountByEvent(ctx, 1)
				return err
			},
		},
		{
			name: "rolls back when fn fails",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn: func(ctx context.Context, repos domain.Repositories) error {
				return errBoom
			},
			wantErr: errBoom,
		},
		{
			name: "begin failure",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errBoom)
			},
			fn: func(ctx context.Context, repos domain.Repositories) error {
				t.Fatal("fn must not run")
				return nil
			},
			wantErr: errBoom,
		},
		{
			name: "nested calls share the outer transaction",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit()
			},
			fn: func(ctx context.Context, repos domain.Repositories) error {
				store, ok := repos.(domain.Store)
				require.True(t, ok)
				return store.WithTx(ctx, func(ctx context.Context, inner domain.Repositories) error {
					require.Same(t, repos, inner)
					return nil
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			err = NewStore(db).WithTx(ctx, tt.fn)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
