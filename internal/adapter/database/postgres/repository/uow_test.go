package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskapp/internal/adapter/database/postgres"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
	"taskapp/pkg/errutil"
)

var (
	insertAccountSQL = regexp.QuoteMeta(`INSERT INTO accounts (account,password) VALUES ($1,$2) RETURNING account, password`)
	selectAccountSQL = regexp.QuoteMeta(`SELECT account, password FROM accounts WHERE account = $1 LIMIT 1`)
	insertTaskSQL    = regexp.QuoteMeta(`INSERT INTO tasks (account,due_date,content,complete) VALUES ($1,$2,$3,$4) RETURNING id, account, due_date, content, complete`)
	selectTaskSQL    = regexp.QuoteMeta(`SELECT id, account, due_date, content, complete FROM tasks WHERE id = $1 LIMIT 1`)
)

func newProvider(t *testing.T) (pgxmock.PgxPoolIface, *UnitOfWorkProvider) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	t.Cleanup(mock.Close)

	return mock, NewUnitOfWorkProvider(postgres.NewWithPool(mock))
}

func TestUnitOfWork_Begin(t *testing.T) {
	t.Run("begin failure", func(t *testing.T) {
		mock, provider := newProvider(t)
		mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

		_, err := provider.Begin(context.Background())
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "UOW_BEGIN_FAILED")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("commit then rollback is a no-op", func(t *testing.T) {
		mock, provider := newProvider(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		ctx := context.Background()
		uow, err := provider.Begin(ctx)
		require.NoError(t, err)

		require.NoError(t, uow.Commit(ctx))
		assert.NoError(t, uow.Rollback(ctx))
		assert.ErrorIs(t, uow.Commit(ctx), port.ErrUnitOfWorkDone)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("commit failure finishes the unit of work", func(t *testing.T) {
		mock, provider := newProvider(t)
		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

		ctx := context.Background()
		uow, err := provider.Begin(ctx)
		require.NoError(t, err)

		err = uow.Commit(ctx)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "UOW_COMMIT_FAILED")

		_, err = uow.Accounts().Select(ctx, "alice")
		assert.ErrorIs(t, err, port.ErrUnitOfWorkDone)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback", func(t *testing.T) {
		mock, provider := newProvider(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		ctx := context.Background()
		uow, err := provider.Begin(ctx)
		require.NoError(t, err)

		require.NoError(t, uow.Rollback(ctx))
		assert.NoError(t, uow.Rollback(ctx))

		_, err = uow.Tasks().SelectByID(ctx, 1)
		assert.ErrorIs(t, err, port.ErrUnitOfWorkDone)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepository(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		run       func(t *testing.T, uow port.UnitOfWork)
	}{
		{
			name: "insert",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(insertAccountSQL).
					WithArgs("alice", "hash").
					WillReturnRows(pgxmock.NewRows([]string{"account", "password"}).AddRow("alice", "hash"))
			},
			run: func(t *testing.T, uow port.UnitOfWork) {
				saved, err := uow.Accounts().Insert(context.Background(), domain.Account{Account: "alice", Password: "hash"})
				require.NoError(t, err)
				assert.Equal(t, domain.Account{Account: "alice", Password: "hash"}, saved)
			},
		},
		{
			name: "insert unique violation",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(insertAccountSQL).
					WithArgs("alice", "hash").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
			},
			run: func(t *testing.T, uow port.UnitOfWork) {
				_, err := uow.Accounts().Insert(context.Background(), domain.Account{Account: "alice", Password: "hash"})
				assert.ErrorIs(t, err, port.ErrConflict)
				errutil.AssertErrorCode(t, err, "ACCOUNT_EXISTS")
			},
		},
		{
			name: "insert other failure",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(insertAccountSQL).
					WithArgs("alice", "hash").
					WillReturnError(errors.New("connection reset"))
			},
			run: func(t *testing.T, uow port.UnitOfWork) {
				_, err := uow.Accounts().Insert(context.Background(), domain.Account{Account: "alice", Password: "hash"})
				assert.NotErrorIs(t, err, port.ErrConflict)
				errutil.AssertErrorCode(t, err, "ACCOUNT_INSERT_FAILED")
				errutil.AssertErrorContext(t, err, "account", "alice")
			},
		},
		{
			name: "select found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(selectAccountSQL).
					WithArgs("alice").
					WillReturnRows(pgxmock.NewRows([]string{"account", "password"}).AddRow("alice", "hash"))
			},
			run: func(t *testing.T, uow port.UnitOfWork) {
				found, err := uow.Accounts().Select(context.Background(), "alice")
				require.NoError(t, err)
				require.NotNil(t, found)
				assert.Equal(t, "hash", found.Password)
			},
		},
		{
			name: "select absent",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(selectAccountSQL).
					WithArgs("nobody").
					WillReturnRows(pgxmock.NewRows([]string{"account", "password"}))
			},
			run: func(t *testing.T, uow port.UnitOfWork) {
				found, err := uow.Accounts().Select(context.Background(), "nobody")
				require.NoError(t, err)
				assert.Nil(t, found)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, provider := newProvider(t)
			mock.ExpectBegin()
			tt.setupMock(mock)
			mock.ExpectRollback()

			ctx := context.Background()
			uow, err := provider.Begin(ctx)
			require.NoError(t, err)

			tt.run(t, uow)

			require.NoError(t, uow.Rollback(ctx))
			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestTaskRepository(t *testing.T) {
	kst := time.FixedZone("KST", 9*60*60)
	due := time.Date(2026, 3, 1, 9, 30, 0, 0, kst)
	columns := []string{"id", "account", "due_date", "content", "complete"}

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		run       func(t *testing.T, uow port.UnitOfWork)
	}{
		{
			name: "insert returns stored row in UTC",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(insertTaskSQL).
					WithArgs("alice", pgxmock.AnyArg(), "write report", false).
					WillReturnRows(pgxmock.NewRows(columns).AddRow(int64(7), "alice", due, "write report", false))
			},
			run: func(t *testing.T, uow port.UnitOfWork) {
				saved, err := uow.Tasks().Insert(context.Background(), domain.Task{
					ID:      99,
					Account: "alice",
					DueDate: due,
					Content: "write report",
				})
				require.NoError(t, err)
				assert.Equal(t, int64(7), saved.ID)
				assert.True(t, due.Equal(saved.DueDate))
				assert.Equal(t, time.UTC, saved.DueDate.Location())
			},
		},
		{
			name: "insert failure",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(insertTaskSQL).
					WithArgs("alice", pgxmock.AnyArg(), "", true).
					WillReturnError(errors.New("disk full"))
			},
			run: func(t *testing.T, uow port.UnitOfWork) {
				_, err := uow.Tasks().Insert(context.Background(), domain.Task{Account: "alice", DueDate: due, Complete: true})
				errutil.AssertErrorCode(t, err, "TASK_INSERT_FAILED")
			},
		},
		{
			name: "select found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(selectTaskSQL).
					WithArgs(int64(7)).
					WillReturnRows(pgxmock.NewRows(columns).AddRow(int64(7), "alice", due, "write report", true))
			},
			run: func(t *testing.T, uow port.UnitOfWork) {
				found, err := uow.Tasks().SelectByID(context.Background(), 7)
				require.NoError(t, err)
				require.NotNil(t, found)
				assert.Equal(t, "alice", found.Account)
				assert.True(t, found.Complete)
				assert.Equal(t, due.UTC(), found.DueDate)
			},
		},
		{
			name: "select absent",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(selectTaskSQL).
					WithArgs(int64(8)).
					WillReturnRows(pgxmock.NewRows(columns))
			},
			run: func(t *testing.T, uow port.UnitOfWork) {
				found, err := uow.Tasks().SelectByID(context.Background(), 8)
				require.NoError(t, err)
				assert.Nil(t, found)
			},
		},
		{
			name: "select failure",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(selectTaskSQL).
					WithArgs(int64(9)).
					WillReturnError(errors.New("connection reset"))
			},
			run: func(t *testing.T, uow port.UnitOfWork) {
				_, err := uow.Tasks().SelectByID(context.Background(), 9)
				errutil.AssertErrorCode(t, err, "TASK_SELECT_FAILED")
				errutil.AssertErrorContext(t, err, "id", int64(9))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, provider := newProvider(t)
			mock.ExpectBegin()
			tt.setupMock(mock)
			mock.ExpectRollback()

			ctx := context.Background()
			uow, err := provider.Begin(ctx)
			require.NoError(t, err)

			tt.run(t, uow)

			require.NoError(t, uow.Rollback(ctx))
			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}
