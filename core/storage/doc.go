// Package storage wraps the Minio client behind a small interface.
//
// The extracts can be dropped into an object-storage bucket instead of a
// local folder; the inventory source layer lists and opens them through
// this interface, and tests substitute the generated mock in mocks/.
package storage
