package model

// Verification compares a freshly built report with the one on disk.
type Verification struct {
	Target  Path
	Skipped bool   // no language extension, nothing to compare
	Missing bool   // no report at Target
	Stale   bool   // report at Target differs from the fresh one
	Diff    string // unified diff from the file on disk to the fresh report
}

// UpToDate reports whether the report on disk matches the current state.
func (v Verification) UpToDate() bool {
	return !v.Skipped && !v.Missing && !v.Stale
}
