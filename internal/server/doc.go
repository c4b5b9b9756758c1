// Package server implements the optional HTTP monitoring server exposing
// health, session statistics, and Prometheus metrics endpoints.
package server
