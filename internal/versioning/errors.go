package versioning

import "errors"

var (
	// ErrInvalidVersionsFile indicates a versions file is not a JSON array of distinct names.
	ErrInvalidVersionsFile = errors.New("invalid versions file")

	// ErrUnknownVersion indicates the configuration names a version that does not exist.
	ErrUnknownVersion = errors.New("unknown version")

	// ErrLastVersionExcluded indicates only_include_versions leaves out the last version.
	ErrLastVersionExcluded = errors.New("last version excluded")

	// ErrVersionPathConflict indicates two versions resolve to the same route.
	ErrVersionPathConflict = errors.New("version path conflict")
)
