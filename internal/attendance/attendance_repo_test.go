package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The lock-then-update path of check-in must execute on the transaction's
// connection, not the pool, or the row lock is released at statement end.
func TestRepository_WithTxRunsOnTransactionConn(t *testing.T) {
	poolDB, poolMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer poolDB.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: poolDB}), &gorm.Config{
		Logger: logger.Discard,
	})
	assert.NoError(t, err)

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txDB.Close()

	empID := uuid.New()
	rowID := uuid.New()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	txMock.ExpectBegin()
	txMock.ExpectQuery(`SELECT (.+) FROM "attendances" (.+)FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "date", "status"}).
			AddRow(rowID.String(), empID.String(), date, StatusAbsent))
	txMock.ExpectExec(`UPDATE "attendances" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	txMock.ExpectCommit()

	tx, err := txDB.Begin()
	assert.NoError(t, err)

	repo := NewRepository(gdb).WithTx(tx)

	rec, err := repo.FindByEmployeeAndDateForUpdate(context.Background(), empID.String(), date)
	assert.NoError(t, err)
	assert.NotNil(t, rec)
	if rec == nil {
		return
	}

	checkIn := date.Add(9 * time.Hour)
	rec.CheckIn = &checkIn
	rec.Status = StatusPresent
	assert.NoError(t, repo.Update(context.Background(), rec))
	assert.NoError(t, tx.Commit())

	assert.NoError(t, txMock.ExpectationsWereMet())
	// Nothing may leak onto the pool connection while the tx is open
	assert.NoError(t, poolMock.ExpectationsWereMet())
}
