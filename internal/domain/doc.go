// Package domain contains the task entity, its value objects and the
// validation rules every stored task must satisfy. It has no knowledge of
// storage, transport or logging.
package domain
