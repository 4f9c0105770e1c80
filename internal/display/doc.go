// Package display provides terminal helpers for warnings and collection progress.
//
// Warnings are for conditions the operator should see but that do not stop a
// run, such as a directory skipped under --on-missing warn:
//
//	display.WarnSkippedDirectory(collErr).Display(os.Stderr)
//
// ProgressIndicator prints one line per scanned directory:
//
//	progress := display.NewProgressIndicator(os.Stderr, len(dirs))
//	progress.Start()
//	for _, dir := range dirs {
//	    progress.Step(dir)
//	}
//	progress.Complete()
//
// Colors come from fatih/color, so they follow color.NoColor and the
// --color flag. All functions write to an io.Writer for testability.
package display
