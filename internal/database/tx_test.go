package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/hireboard/internal/models"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func candidateRow(id, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "job_id", "name", "email", "phone", "title", "location", "status",
		"assigned_to", "score", "applied_at", "updated_at",
	}).AddRow(id, "job-1", "Sarah", "", "", "", "", status, nil, nil, int64(0), int64(0))
}

func TestWithTx_BeginFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("disk full"))
	err = withTx(context.Background(), db, func(*sql.Tx) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to begin transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectRollback()
	err = withTx(context.Background(), db, func(*sql.Tx) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_CommitFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("locked"))
	err = withTx(context.Background(), db, func(*sql.Tx) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to commit transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMoveCandidate_UpdateFailureRollsBack(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM candidates WHERE id = ?").
		WithArgs("1").
		WillReturnRows(candidateRow("1", "Applied"))
	mock.ExpectQuery("SELECT (.+) FROM automation_rules").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "active", "trigger_on", "from_stage", "to_stage"}))
	mock.ExpectExec("UPDATE candidates").WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	res, err := repo.MoveCandidate(context.Background(), models.MoveRequest{
		CandidateID: "1", From: models.StageApplied, To: models.StageScreening,
	})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "failed to update candidate 1 status")
	_, isAPI := models.AsAPIError(err)
	assert.False(t, isAPI, "storage failures are not domain errors")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMoveCandidate_LogFailureRollsBack(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM candidates WHERE id = ?").
		WithArgs("1").
		WillReturnRows(candidateRow("1", "Applied"))
	mock.ExpectQuery("SELECT (.+) FROM automation_rules").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "active", "trigger_on", "from_stage", "to_stage"}))
	mock.ExpectExec("UPDATE candidates").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO stage_moves").WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	_, err := repo.MoveCandidate(context.Background(), models.MoveRequest{
		CandidateID: "1", From: models.StageApplied, To: models.StageScreening,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to log move")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignCandidate_CommitFailure(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM candidates WHERE id = ?").
		WithArgs("1").
		WillReturnRows(candidateRow("1", "Applied"))
	mock.ExpectExec("UPDATE candidates SET assigned_to").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("database is locked"))

	err := repo.AssignCandidate(context.Background(), "1", "recruiter-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
	assert.NoError(t, mock.ExpectationsWereMet())
}
