package domain

import "fmt"

// Captions naming the two persisted documents in status messages.
const (
	CaptionCache   = "cache"
	CaptionStartup = "startup"
)

// StatusNotAttempted reports that a document was not read.
func StatusNotAttempted(caption string) string {
	return fmt.Sprintf("did not attempt to load %s file", caption)
}

// StatusLoaded reports that a document was adopted.
func StatusLoaded(caption, path string) string {
	return fmt.Sprintf("loaded %s file from [%s]", caption, path)
}

// StatusDismissed reports that a document carried a different version tag.
func StatusDismissed(caption, path string) string {
	return fmt.Sprintf("dismissed %s file from [%s] because of different version tag", caption, path)
}

// StatusNotFound reports that a document does not exist.
func StatusNotFound(caption, path string) string {
	return fmt.Sprintf("%s file not found at [%s]", caption, path)
}

// StatusLoadFailed reports that a document could not be read or parsed.
func StatusLoadFailed(caption, path string, err error) string {
	return fmt.Sprintf("failed to load or parse %s file from [%s] with error [%v]", caption, path, err)
}

// StatusSaved reports that a document was written.
func StatusSaved(caption, path string) string {
	return fmt.Sprintf("saved %s file to [%s]", caption, path)
}

// StatusSaveFailed reports that a document could not be written.
func StatusSaveFailed(caption, path string, err error) string {
	return fmt.Sprintf("failed to save %s file to [%s] with error [%v]", caption, path, err)
}

// StatusCacheHit reports a resolution served from the cache.
func StatusCacheHit(path string) string {
	return fmt.Sprintf("cache hit on module [%s]", path)
}

// StatusCacheMiss reports a resolution that was recorded in the cache.
func StatusCacheMiss(path string) string {
	return fmt.Sprintf("cache miss on module [%s]", path)
}

// StatusNotCached reports a resolution that is not eligible for caching.
func StatusNotCached(path string) string {
	return fmt.Sprintf("module [%s] not cached", path)
}
