// Package memory provides the process-local implementation of the
// store.TaskStore interface. State lives only as long as the process.
package memory
