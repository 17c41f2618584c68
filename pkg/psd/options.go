package psd

// PatchOptions controls high-level patch operation behavior.
type PatchOptions struct {
	// CreateBackup copies an existing output file to <outPath>.bak before it
	// is overwritten.
	CreateBackup bool

	// DryRun plans the edit and returns its report without writing anything.
	DryRun bool
}
