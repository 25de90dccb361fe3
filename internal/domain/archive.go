package domain

import (
	"time"

	"github.com/google/uuid"
)

type ArchiveReason string

const (
	ArchiveFulfilled ArchiveReason = "fulfilled"
	ArchiveExpired   ArchiveReason = "expired"
	ArchiveCancelled ArchiveReason = "cancelled"
	ArchiveManual    ArchiveReason = "manual"
)

// ArchivedRequest is a moved (not copied) terminal FootageRequest plus
// archive-only metadata. Restore strips the metadata again.
type ArchivedRequest struct {
	FootageRequest
	ArchivedAt     time.Time     `json:"archived_at"`
	ArchivedReason ArchiveReason `json:"archived_reason"`
	OriginalID     uuid.UUID     `json:"original_id"`
}

type ArchiveSweepResult struct {
	Archived int                   `json:"archived"`
	ByReason map[ArchiveReason]int `json:"by_reason"`
}

type ArchiveStats struct {
	Total    int64                   `json:"total"`
	ByReason map[ArchiveReason]int64 `json:"by_reason"`
}
