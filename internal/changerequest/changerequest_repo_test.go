package changerequest_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-hrcore/internal/changerequest"
	"go-hrcore/internal/employeeprofile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newRepoTestGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(
		postgres.New(postgres.Config{Conn: db}),
		&gorm.Config{DisableAutomaticPing: true},
	)
	assert.NoError(t, err)

	return gdb, mock, db
}

func TestChangeRequestRepository_TransitionJoinsCallerTx(t *testing.T) {
	ctx := context.Background()
	gdb, mock, db := newRepoTestGorm(t)
	repo := changerequest.NewRepository(gdb)

	// Only the caller's transaction may appear on the wire: a second
	// Begin would mean the update ran on the pool and autocommitted.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "change_requests"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	tx, err := db.Begin()
	assert.NoError(t, err)

	ok, err := repo.WithTx(tx).TransitionFromPending(
		ctx, uuid.New().String(), changerequest.StatusApproved, "", time.Now().UTC(),
	)

	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChangeRequestService_ApproveFailedApplyRollsBackClaim(t *testing.T) {
	ctx := context.Background()
	gdb, mock, db := newRepoTestGorm(t)

	repo := changerequest.NewRepository(gdb)
	profileRepo := employeeprofile.NewRepository(gdb)
	svc := changerequest.NewService(db, repo, profileRepo)

	id := uuid.New()
	payload, err := changerequest.EncodeFieldEditPayload(changerequest.FieldEditPayload{
		Field:    "firstName",
		NewValue: "Ayu",
	})
	assert.NoError(t, err)

	// Claim succeeds, the profile edit fails, and the whole transaction
	// rolls back: the CAS must not survive on its own.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "change_requests" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "request_id", "employee_profile_id", "kind", "payload", "status", "submitted_at"},
		).AddRow(
			id.String(), uuid.New().String(), uuid.New().String(),
			changerequest.KindFieldEdit, payload, changerequest.StatusPending, time.Now().UTC(),
		))
	mock.ExpectExec(`UPDATE "change_requests"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "employee_profiles"`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err = svc.Approve(ctx, id.String())

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChangeRequestRepository_ListOrdering(t *testing.T) {
	ctx := context.Background()

	newest := uuid.New()
	older := uuid.New()
	listRows := func() *sqlmock.Rows {
		now := time.Now().UTC()
		return sqlmock.NewRows(
			[]string{"id", "seq", "request_id", "employee_profile_id", "kind", "payload", "status", "submitted_at"},
		).AddRow(
			newest.String(), int64(2), uuid.New().String(), uuid.New().String(),
			changerequest.KindFieldEdit, []byte(`{"kind":"FIELD_EDIT","fieldEdit":{"field":"lastName","newValue":"Putri","reason":""}}`),
			changerequest.StatusPending, now,
		).AddRow(
			older.String(), int64(1), uuid.New().String(), uuid.New().String(),
			changerequest.KindFieldEdit, []byte(`{"kind":"FIELD_EDIT","fieldEdit":{"field":"firstName","newValue":"Ayu","reason":""}}`),
			changerequest.StatusPending, now.Add(-time.Hour),
		)
	}

	t.Run("by employee orders submitted_at desc with seq tie-break", func(t *testing.T) {
		gdb, mock, _ := newRepoTestGorm(t)
		repo := changerequest.NewRepository(gdb)

		employeeID := uuid.New().String()
		mock.ExpectQuery(`SELECT \* FROM "change_requests" WHERE employee_profile_id = \$1 ORDER BY submitted_at DESC, seq ASC`).
			WithArgs(employeeID).
			WillReturnRows(listRows())

		requests, err := repo.FindAllByEmployee(ctx, employeeID)

		assert.NoError(t, err)
		assert.Len(t, requests, 2)
		assert.Equal(t, newest, requests[0].ID)
		assert.Equal(t, older, requests[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list all carries the same ordering", func(t *testing.T) {
		gdb, mock, _ := newRepoTestGorm(t)
		repo := changerequest.NewRepository(gdb)

		mock.ExpectQuery(`SELECT \* FROM "change_requests" ORDER BY submitted_at DESC, seq ASC`).
			WillReturnRows(listRows())

		requests, err := repo.FindAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, requests, 2)
		assert.Equal(t, newest, requests[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
