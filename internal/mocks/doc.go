// Package mocks provides testify-based mock implementations of the store
// interfaces and external capabilities, shared by service and API tests.
package mocks
