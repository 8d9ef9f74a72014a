package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/brettbedarf/memfs"
)

// MockNamespace implements memfs.Namespace for testing front ends
type MockNamespace struct {
	mock.Mock
}

func (m *MockNamespace) Mkdir(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockNamespace) Cd(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockNamespace) Ls(path string) (*memfs.Listing, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*memfs.Listing), args.Error(1)
}

func (m *MockNamespace) Touch(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockNamespace) Cat(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

func (m *MockNamespace) Echo(name, content string) error {
	args := m.Called(name, content)
	return args.Error(0)
}

func (m *MockNamespace) Mv(src, dst string) error {
	args := m.Called(src, dst)
	return args.Error(0)
}

func (m *MockNamespace) Cp(src, dst string) error {
	args := m.Called(src, dst)
	return args.Error(0)
}

func (m *MockNamespace) Rm(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockNamespace) Find(pattern string) ([]string, error) {
	args := m.Called(pattern)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockNamespace) Pwd() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockNamespace) CwdName() string {
	// Handle function return types so the prompt can follow Cd calls
	args := m.Called()
	if fn, ok := args.Get(0).(func() string); ok {
		return fn()
	}
	return args.String(0)
}

var _ memfs.Namespace = (*MockNamespace)(nil)
