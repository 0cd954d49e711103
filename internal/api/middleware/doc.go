// Package middleware contains HTTP middleware shared by all task routes.
package middleware
