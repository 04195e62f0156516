package build

import "errors"

var (
	// ErrNavigationInvalid is the cause of the error returned when any sidebar
	// fails validation.
	ErrNavigationInvalid = errors.New("navigation is invalid")

	// ErrBrokenLinks is the cause of the error returned when a site link
	// check fails under the throw policy.
	ErrBrokenLinks = errors.New("broken links")

	// ErrArtifactWrite indicates an output file could not be written.
	ErrArtifactWrite = errors.New("artifact write failed")
)
