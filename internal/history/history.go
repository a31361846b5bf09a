// internal/history/history.go
//
// This package holds the fetched logo timeline and the status of the most
// recent fetch attempt. The remote history service returns the full timeline
// on every call; there is no incremental merge.

package history

// Snapshot is one historical data point: an opaque timestamp label paired
// with a base64-encoded raster image payload. Immutable once received.
type Snapshot struct {
	Time string `json:"time"`
	Logo string `json:"logo"`
}

// History is the ordered sequence of snapshots returned by one fetch.
// Insertion order is chronological order.
type History []Snapshot

// Phase is the coarse status of the history store.
type Phase int

const (
	// PhaseLoading means no fetch has completed yet.
	PhaseLoading Phase = iota
	// PhaseFailure means the last attempt failed and no usable data exists.
	PhaseFailure
	// PhaseSuccess means usable data is present (possibly stale).
	PhaseSuccess
)

// FetchStatus is the store state: a phase plus, when PhaseSuccess, the
// history payload.
type FetchStatus struct {
	Phase   Phase
	History History
}

// Loading is the initial store state before any fetch completes.
func Loading() FetchStatus {
	return FetchStatus{Phase: PhaseLoading}
}

// FetchResult is the outcome of one completed fetch attempt. Exactly one of
// History or Err is meaningful.
type FetchResult struct {
	History History
	Err     error
}

// Apply folds a completed fetch into the current status.
//
// A successful fetch always replaces the history wholesale. A failed fetch
// moves to PhaseFailure only when no prior success exists; otherwise the
// last good value is retained so transient network errors do not blank the
// display.
func Apply(current FetchStatus, result FetchResult) FetchStatus {
	if result.Err == nil {
		return FetchStatus{Phase: PhaseSuccess, History: result.History}
	}
	if current.Phase == PhaseSuccess {
		return current
	}
	return FetchStatus{Phase: PhaseFailure}
}
