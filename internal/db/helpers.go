package db

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

func NilTimePtr(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}

// Timestamptz converts a zero time to NULL.
func Timestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

// clampCount keeps API counters inside BIGINT.
func clampCount(n uint64) int64 {
	const maxInt64 = 1<<63 - 1
	if n > maxInt64 {
		return maxInt64
	}
	return int64(n)
}

func unsignedCount(n int64) uint64 {
	if n < 0 {
		return 0
	}
	return uint64(n)
}

func pgUUID(id [16]byte) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}
