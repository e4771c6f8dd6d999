package store

import "batchtrace/internal/platform/logger"

// Option adjusts the Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by the adapters and their tracers
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}
