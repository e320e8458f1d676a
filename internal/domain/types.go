package domain

// FetchRequest identifies one fetch attempt: which item, for whom.
type FetchRequest struct {
	ItemID        string
	RequesterID   string
	RequesterName string
}

// FetchResult is the caller-facing outcome of a successful fetch.
type FetchResult struct {
	ItemID   string
	FilePath string
	// Cached is true when the deliverable already existed on disk and
	// the download phase was skipped. The fetch is still recorded.
	Cached  bool
	Message string
}

// Stats reports the engine's runtime numbers.
type Stats struct {
	UsedBytes       int64
	MaxBytes        int64
	ActiveDownloads int
}
