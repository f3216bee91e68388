package migration

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockMigrator struct {
	mock.Mock
}

func (m *MockMigrator) Up() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMigrator) Version() (uint, bool, error) {
	args := m.Called()
	return args.Get(0).(uint), args.Bool(1), args.Error(2)
}

func (m *MockMigrator) Close() (error, error) {
	args := m.Called()
	return args.Error(0), args.Error(1)
}

func engineFor(m Migrator, gotSource, gotDB *string) MigrationEngine {
	return func(source, db string) (Migrator, error) {
		if gotSource != nil {
			*gotSource = source
		}
		if gotDB != nil {
			*gotDB = db
		}
		return m, nil
	}
}

func TestMigration_Up_Success(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(nil)
	mockM.On("Version").Return(uint(1), false, nil)
	mockM.On("Close").Return(nil, nil)

	var source, db string
	mg := NewMigration("migrations", "postgres://localhost/ots", engineFor(mockM, &source, &db), slog.Default())

	require.NoError(t, mg.Up())
	assert.Equal(t, "file://migrations", source)
	assert.Equal(t, "postgres://localhost/ots", db)
	mockM.AssertExpectations(t)
}

func TestMigration_Up_NoChange(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(migrate.ErrNoChange)
	mockM.On("Version").Return(uint(1), false, nil)
	mockM.On("Close").Return(nil, nil)

	mg := NewMigration("migrations", "", engineFor(mockM, nil, nil), slog.Default())

	assert.NoError(t, mg.Up())
}

func TestMigration_Up_Failure(t *testing.T) {
	mockM := new(MockMigrator)
	upErr := errors.New("syntax error at or near")
	mockM.On("Up").Return(upErr)
	mockM.On("Close").Return(nil, nil)

	mg := NewMigration("migrations", "", engineFor(mockM, nil, nil), slog.Default())

	err := mg.Up()
	assert.ErrorIs(t, err, upErr)
	mockM.AssertNotCalled(t, "Version")
}

func TestMigration_Up_CloseError(t *testing.T) {
	mockM := new(MockMigrator)
	closeErr := errors.New("connection reset")
	mockM.On("Up").Return(nil)
	mockM.On("Version").Return(uint(1), false, nil)
	mockM.On("Close").Return(nil, closeErr)

	mg := NewMigration("migrations", "", engineFor(mockM, nil, nil), slog.Default())

	assert.ErrorIs(t, mg.Up(), closeErr)
}

func TestMigration_Up_EngineError(t *testing.T) {
	engine := func(source, db string) (Migrator, error) {
		return nil, errors.New("engine crash")
	}

	mg := NewMigration("migrations", "", engine, slog.Default())
	err := mg.Up()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine crash")
}
