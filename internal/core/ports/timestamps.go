package ports

import "time"

// Timestamps provides file modification times memoized for one invocation.
//
//go:generate go run go.uber.org/mock/mockgen -source=timestamps.go -destination=mocks/mock_timestamps.go -package=mocks
type Timestamps interface {
	// TimestampOf returns the modification time of path, or domain.EpochZero
	// if the file does not exist.
	TimestampOf(path string) time.Time

	// Invalidate forgets the memoized times of paths. Without arguments it forgets everything.
	Invalidate(paths ...string)
}
