package argus

import "strconv"

// Revision refers to a specific point of repository history.
//
// A repository starts with an initial commit whose revision is Init (1).
// Each later commit gets its own revision number, monotonically increasing
// from the previous commit's revision.
//
// A negative revision is relative to the latest commit: Head (-1) is the
// latest commit itself, -2 the one before it, and so on. The zero value
// means "unspecified"; requests omit it and the server applies its default
// for the operation.
type Revision int64

const (
	// Head is revision -1, the latest commit of a repository.
	Head Revision = -1

	// Init is revision 1, the initial commit of a repository.
	Init Revision = 1
)

// Specified reports whether r refers to a commit at all. The zero value
// stands for "let the server decide".
func (r Revision) Specified() bool {
	return r != 0
}

// Relative reports whether r is relative to the latest commit.
func (r Revision) Relative() bool {
	return r < 0
}

// String renders r in the decimal form used in request paths, query
// parameters and watch headers.
func (r Revision) String() string {
	return strconv.FormatInt(int64(r), 10)
}
