// Package library promotes staged tracks into the music library.
//
// The library mirrors the staging layout, <artist>/<album>/<file>. Moves are
// renames, with a copy fallback across devices, so a track is always in
// exactly one of the two trees.
//
// # Approval
//
// Three ways to approve are offered:
//
//	approver := library.NewApprover(settings.StagingDir(), settings.Paths.LibraryDir)
//
//	// Everything; existing library files are never overwritten.
//	_, err := approver.ApproveAll()
//
//	// Chosen files; a same-named library file is replaced.
//	n, err := approver.ApproveSelected(paths)
//
//	// Everything, asking before a track that looks like an existing one.
//	report, err := approver.ApproveWithChecks(func(p library.DuplicatePrompt) bool {
//	    return askUser(p.Candidate, p.Matches)
//	})
//
// Failures of single files do not stop the others; they come back joined
// with errors.Join once the walk is done.
//
// # Duplicates
//
// Two names are look-alikes when their lowercase stems reach a difflib
// sequence ratio of 0.6:
//
//	library.Similarity("01 One More Time", "01 one more time (remastered)") // ≈ 0.71
package library
