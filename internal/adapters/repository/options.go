package repository

// Option applies a configuration option to the SnapshotStore.
type Option func(*SnapshotStore)

// WithMaxRecords rejects datasets larger than n. Zero disables the limit.
func WithMaxRecords(n int) Option {
	return func(s *SnapshotStore) {
		if n >= 0 {
			s.maxRecords = n
		}
	}
}
