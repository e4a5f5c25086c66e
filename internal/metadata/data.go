package metadata

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging, reporting).

	Rules:
	 - ErrorCause is for observability only.
	 - ErrorCause MUST NOT influence control flow: it must never be used
	   to derive the hit/miss decision, abort decisions, or whether a
	   cache write failure is surfaced to the caller.
	 - ErrorCause values MUST have stable, package-agnostic semantics.
	 - Pipeline packages MAY map their local errors to ErrorCause,
	   but MUST NOT invent new meanings.
	Non-goals:
	 - ErrorCause does not encode severity.
	 - ErrorCause does not imply retryability.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

/*
Canonical ErrorCause Table

# CauseUnknown

Meaning:
  - The failure does not map cleanly to any known category.
  - Used as a safe fallback.

# CauseNetworkFailure

Meaning:
  - Failure caused by network transport or remote availability.

Examples:
  - TCP timeouts
  - DNS resolution failures
  - Connection resets

# CauseAccessDenied

Meaning:
  - The remote service refused the request.

Examples:
  - HTTP 401 / 403 for a missing, invalid, or expired session cookie
  - A redirect to the login page in place of the input body

# CauseRequestInvalid

Meaning:
  - The remote service could not serve the requested resource.

Examples:
  - HTTP 404 for a day that has not unlocked yet
  - Client errors for a malformed input URL

# CauseStorageFailure

Meaning:
  - Failure while resolving, reading, or writing the cache directory.

Examples:
  - Disk full
  - Permission errors
  - Filesystem I/O failures
*/
const (
	CauseUnknown = iota
	CauseNetworkFailure
	CauseAccessDenied
	CauseRequestInvalid
	CauseStorageFailure
)

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrURL       AttributeKey = "url"
	AttrEntryID   AttributeKey = "entry_id"
	AttrWritePath AttributeKey = "write_path"
)
