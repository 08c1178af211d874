package pg

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	database := &Database{DB: db}

	mock.ExpectPing()
	status := database.HealthCheck(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.Empty(t, status.Error)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	status = database.HealthCheck(context.Background())
	assert.Equal(t, "unhealthy", status.Status)
	assert.Equal(t, "connection refused", status.Error)

	assert.NoError(t, mock.ExpectationsWereMet())
}
