// Package events carries task lifecycle notifications from the service layer
// to interested sinks (structured log, Kafka) without coupling the service to
// any of them.
package events
