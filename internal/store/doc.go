// Package store defines interfaces for task persistence operations.
// The interfaces keep the service and API layers independent of how the
// task collection is held; the only implementation lives in
// internal/platform/memory.
package store
