// Package store defines the storage interfaces the server depends on.
// Implementations live in the gorm subpackage; tests substitute
// testify mocks.
package store
