package content

import "errors"

// Sentinel errors for content discovery. They are carried as the cause of the
// classified errors returned by Scan.
var (
	// ErrContentDirNotFound indicates a configured content directory does not exist.
	ErrContentDirNotFound = errors.New("content directory not found")

	// ErrContentWalkFailed indicates filesystem traversal of a content directory failed.
	ErrContentWalkFailed = errors.New("content directory walk failed")

	// ErrFileReadFailed indicates reading a discovered document failed.
	ErrFileReadFailed = errors.New("document read failed")

	// ErrInvalidFrontMatter indicates a document's front matter could not be parsed.
	ErrInvalidFrontMatter = errors.New("invalid front matter")

	// ErrDuplicateDocumentID indicates two files resolve to the same document id within one version.
	ErrDuplicateDocumentID = errors.New("duplicate document id")
)
