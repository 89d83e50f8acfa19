package mocks

import (
	"database/sql"

	"github.com/stretchr/testify/mock"

	dbmodel "github.com/perfectbrow/consent-api/internal/system/database/model"
)

// MockDBClient is a mock implementation of provider.DBClientInterface
type MockDBClient struct {
	mock.Mock
}

func (m *MockDBClient) Query(query dbmodel.DBQueryInterface, args ...interface{}) ([]map[string]interface{}, error) {
	callArgs := m.Called(query, args)
	if callArgs.Get(0) == nil {
		return nil, callArgs.Error(1)
	}
	return callArgs.Get(0).([]map[string]interface{}), callArgs.Error(1)
}

func (m *MockDBClient) Execute(query dbmodel.DBQueryInterface, args ...interface{}) (sql.Result, error) {
	callArgs := m.Called(query, args)
	if callArgs.Get(0) == nil {
		return nil, callArgs.Error(1)
	}
	return callArgs.Get(0).(sql.Result), callArgs.Error(1)
}

func (m *MockDBClient) BeginTx() (dbmodel.TxInterface, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(dbmodel.TxInterface), args.Error(1)
}

func (m *MockDBClient) DatabaseType() string {
	args := m.Called()
	return args.String(0)
}

// MockTx is a mock implementation of dbmodel.TxInterface
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Exec(query string, args ...interface{}) (sql.Result, error) {
	callArgs := m.Called(query, args)
	if callArgs.Get(0) == nil {
		return nil, callArgs.Error(1)
	}
	return callArgs.Get(0).(sql.Result), callArgs.Error(1)
}

func (m *MockTx) Query(query string, args ...interface{}) (*sql.Rows, error) {
	callArgs := m.Called(query, args)
	if callArgs.Get(0) == nil {
		return nil, callArgs.Error(1)
	}
	return callArgs.Get(0).(*sql.Rows), callArgs.Error(1)
}

func (m *MockTx) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTx) Rollback() error {
	args := m.Called()
	return args.Error(0)
}
