// Package service contains the task use cases. It sits between the HTTP
// handlers and the task store, turning absent results into ErrTaskNotFound,
// running the query layer over store snapshots and emitting a lifecycle
// event after each successful mutation.
//
// The service depends on the store.TaskStore and events.EventEmitter
// interfaces only, never on a concrete implementation.
package service
