package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the stable classification of a fetch failure. Classification
// happens once, at the point the error is produced; callers further up
// the stack only inspect it.
type Kind string

const (
	// KindInvalidInput means the request was malformed before any work started
	KindInvalidInput Kind = "invalid_input"
	// KindAlreadyInProgress means the gate rejected a duplicate fetch for an item
	KindAlreadyInProgress Kind = "already_in_progress"
	// KindBlacklisted means the item is banned by moderation
	KindBlacklisted Kind = "blacklisted"
	// KindQuotaExceeded means storage is still over quota after one cleanup attempt
	KindQuotaExceeded Kind = "quota_exceeded"
	// KindNotFound means a mirror confirmed the item does not exist
	KindNotFound Kind = "not_found"
	// KindNetwork means a timeout or connection failure against a mirror
	KindNetwork Kind = "network"
	// KindStructural means the mirror responded but its payload could not be parsed
	KindStructural Kind = "structural"
	// KindFilesystem means a local disk or permission problem
	KindFilesystem Kind = "filesystem"
	// KindLedgerUnavailable means the provenance store could not be reached or written
	KindLedgerUnavailable Kind = "ledger_unavailable"
)

// FetchError carries a classified failure with a human-readable reason.
type FetchError struct {
	Kind     Kind
	Endpoint string // mirror endpoint the failure occurred against, if any
	Reason   string
	Err      error
}

func (e *FetchError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Endpoint != "" {
		b.WriteString(" [")
		b.WriteString(e.Endpoint)
		b.WriteString("]")
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a classified error with a formatted reason.
func NewFetchError(kind Kind, endpoint string, format string, args ...interface{}) *FetchError {
	return &FetchError{
		Kind:     kind,
		Endpoint: endpoint,
		Reason:   fmt.Sprintf(format, args...),
	}
}

// WrapFetchError creates a classified error carrying an underlying cause.
func WrapFetchError(kind Kind, endpoint string, err error, reason string) *FetchError {
	return &FetchError{
		Kind:     kind,
		Endpoint: endpoint,
		Reason:   reason,
		Err:      err,
	}
}

// MirrorFailure records one mirror's failure during failover.
type MirrorFailure struct {
	Endpoint string
	Kind     Kind
	Reason   string
}

// MirrorsExhaustedError is returned when every mirror failed with a
// retryable (network or structural) error. It lists each mirror's last
// failure so an operator can tell "all mirrors are down" from "the
// remote site changed its page structure".
type MirrorsExhaustedError struct {
	ItemID   string
	Failures []MirrorFailure
}

func (e *MirrorsExhaustedError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %s (%s)", f.Endpoint, f.Kind, f.Reason))
	}
	return fmt.Sprintf("all mirrors failed for item %s: %s", e.ItemID, strings.Join(parts, "; "))
}

// KindOf returns the classification of err, or the empty Kind when the
// error carries none. A fully exhausted failover is reported as a
// network failure since every mirror-level error in it was retryable.
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	var me *MirrorsExhaustedError
	if errors.As(err, &me) {
		return KindNetwork
	}
	return ""
}

// RetryableAcrossMirrors reports whether a failure classified as kind
// should trigger failover to the next mirror. Not-found is endpoint
// independent and local resource problems cannot be fixed remotely, so
// both abort immediately.
func RetryableAcrossMirrors(kind Kind) bool {
	return kind == KindNetwork || kind == KindStructural
}
