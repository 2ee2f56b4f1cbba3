package domain

import "go.trai.ch/zerr"

var (
	// ErrModuleNotFound is returned by a resolver when a request cannot be satisfied.
	ErrModuleNotFound = zerr.New("cannot find module")

	// ErrDocumentReadFailed is returned when a persisted document cannot be read.
	ErrDocumentReadFailed = zerr.New("failed to read module location document")

	// ErrDocumentParseFailed is returned when a persisted document is not a valid JSON object.
	ErrDocumentParseFailed = zerr.New("failed to parse module location document")

	// ErrDocumentInvalidEntry is returned when a document entry does not map to a string path.
	ErrDocumentInvalidEntry = zerr.New("module location entry is not a string")

	// ErrDocumentMarshalFailed is returned when the in-memory document cannot be serialized.
	ErrDocumentMarshalFailed = zerr.New("failed to marshal module location document")

	// ErrDocumentWriteFailed is returned when a document cannot be written to disk.
	ErrDocumentWriteFailed = zerr.New("failed to write module location document")

	// ErrScopeInvalid is returned when the cache scope cannot be made absolute.
	ErrScopeInvalid = zerr.New("invalid cache scope")

	// ErrInvalidSaveTimeout is returned when a negative save timeout is configured.
	ErrInvalidSaveTimeout = zerr.New("save timeout must not be negative")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrVersionFileFailed is returned when the version file cannot be fingerprinted.
	ErrVersionFileFailed = zerr.New("failed to fingerprint version file")

	// ErrAlreadyStarted is returned when the cache is started twice.
	ErrAlreadyStarted = zerr.New("module location cache already started")

	// ErrNotStarted is returned when an operation requires a started cache.
	ErrNotStarted = zerr.New("module location cache not started")

	// ErrCleanFailed is returned when a persisted document cannot be removed.
	ErrCleanFailed = zerr.New("failed to remove module location document")
)
