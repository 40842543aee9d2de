package git

import "fmt"

// OpenError reports that a path does not exist or is not a readable
// Git repository.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open repository %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// HeadError reports that HEAD exists but could not be resolved to a
// usable reference. The unborn/detached cases are not errors; see
// HeadState.
type HeadError struct {
	Path string
	Err  error
}

func (e *HeadError) Error() string {
	return fmt.Sprintf("resolve HEAD of %s: %v", e.Path, e.Err)
}

func (e *HeadError) Unwrap() error { return e.Err }

// BranchError reports that a branch reference could not be enumerated
// or resolved.
type BranchError struct {
	Path   string
	Branch string // empty when the failure is in branch enumeration
	Err    error
}

func (e *BranchError) Error() string {
	if e.Branch == "" {
		return fmt.Sprintf("list branches of %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("resolve branch %s in %s: %v", e.Branch, e.Path, e.Err)
}

func (e *BranchError) Unwrap() error { return e.Err }
