// Package gitctx lists the files of a git working tree for review.
//
// [Tracked] shells out to git so that .gitignore rules are honoured before
// the intake filter runs; the result uses the same folder-relative paths as
// a plain directory walk.
package gitctx
