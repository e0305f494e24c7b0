// Package slog provides log/slog decorators for phonecrawl services.
package slog
