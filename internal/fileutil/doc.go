// Package fileutil collects the base names that fileset-compare compares.
//
// Collect walks one directory, optionally recursively, and returns every
// regular file below it that survives the exclusion patterns, together with
// the file's base name (the file name minus its final extension).
//
// # Exclusions
//
// An exclusion pattern is a plain substring. A path is skipped when any
// pattern occurs anywhere in its full path, where the full path is the
// directory argument joined with the path relative to it:
//
//	result, err := fileutil.Collect("deploy/kubernetes", fileutil.CollectOptions{
//	    Recursive: true,
//	    Excludes:  []string{"/.git", "-secret"},
//	})
//
// A directory that matches is pruned. Nothing below it could survive anyway,
// because every descendant path contains the directory's path.
//
// # Base names
//
// BaseName strips exactly one extension:
//
//	auth_service.yaml   -> auth_service
//	bundle.tar.gz       -> bundle.tar
//	.env                -> .env
//	Makefile            -> Makefile
//
// Further stripping is the job of normalization rules.
//
// # Errors
//
// A missing root, a root that is not a directory, or a root that cannot be
// read yields a *models.CollectionError. Problems below the root (an
// unreadable subdirectory, a dangling symlink) are collected in
// CollectResult.Errors and the walk continues.
package fileutil
