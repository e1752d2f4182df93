package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/atelier-rental-ledger/internal/domain/staff"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftRepository_Create(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &ShiftRepository{querier: mock, logger: logger}

	shift := staff.NewShift(uuid.New(), time.Now())

	query := `
		INSERT INTO shifts \(id, staff_id, check_in, check_out, total_hours, created_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(shift.ID, shift.StaffID, shift.CheckIn, shift.CheckOut, shift.TotalHours, shift.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.Create(ctx, shift)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestShiftRepository_GetOpenByStaff(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &ShiftRepository{querier: mock, logger: logger}
	staffID := uuid.New()
	now := time.Now()

	query := `
		SELECT id, staff_id, check_in, check_out, total_hours, created_at
		FROM shifts
		WHERE staff_id = \$1 AND check_out IS NULL
		ORDER BY check_in DESC
		LIMIT 1
	`

	t.Run("open shift found", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "staff_id", "check_in", "check_out", "total_hours", "created_at"}).
			AddRow(uuid.New(), staffID, now.Add(-2*time.Hour), (*time.Time)(nil), 0.0, now.Add(-2*time.Hour))

		mock.ExpectQuery(query).WithArgs(staffID).WillReturnRows(rows)

		shift, err := repo.GetOpenByStaff(ctx, staffID)
		assert.NoError(t, err)
		require.NotNil(t, shift)
		assert.True(t, shift.IsOpen())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no open shift returns nil", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(staffID).WillReturnError(pgx.ErrNoRows)

		shift, err := repo.GetOpenByStaff(ctx, staffID)
		assert.NoError(t, err)
		assert.Nil(t, shift)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestShiftRepository_Update(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &ShiftRepository{querier: mock, logger: logger}

	checkIn := time.Now().Add(-8 * time.Hour)
	shift := staff.NewShift(uuid.New(), checkIn)
	require.NoError(t, shift.Close(time.Now()))

	query := `
		UPDATE shifts
		SET check_in = \$1, check_out = \$2, total_hours = \$3
		WHERE id = \$4
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(shift.CheckIn, shift.CheckOut, shift.TotalHours, shift.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.Update(ctx, shift)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(shift.CheckIn, shift.CheckOut, shift.TotalHours, shift.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.Update(ctx, shift)
		var notFoundErr staff.ErrShiftNotFound
		assert.ErrorAs(t, err, &notFoundErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestShiftRepository_List(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &ShiftRepository{querier: mock, logger: logger}
	now := time.Now()

	query := `
		SELECT id, staff_id, check_in, check_out, total_hours, created_at
		FROM shifts
		ORDER BY check_in DESC
		LIMIT \$1 OFFSET \$2
	`

	t.Run("success", func(t *testing.T) {
		closed := now.Add(-time.Hour)
		rows := pgxmock.NewRows([]string{"id", "staff_id", "check_in", "check_out", "total_hours", "created_at"}).
			AddRow(uuid.New(), uuid.New(), now.Add(-9*time.Hour), &closed, 8.0, now.Add(-9*time.Hour)).
			AddRow(uuid.New(), uuid.New(), now.Add(-2*time.Hour), (*time.Time)(nil), 0.0, now.Add(-2*time.Hour))

		mock.ExpectQuery(query).WithArgs(50, 0).WillReturnRows(rows)

		shifts, err := repo.List(ctx, 50, 0)
		assert.NoError(t, err)
		require.Len(t, shifts, 2)
		assert.False(t, shifts[0].IsOpen())
		assert.True(t, shifts[1].IsOpen())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
