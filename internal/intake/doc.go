// Package intake decides which files of a selected project folder are sent for
// review and concatenates them into one delimited text payload.
//
// Filtering is a pure function of each file's slash-separated path: files under
// an ignored directory (node_modules, .git, dist, ...) or named like a lock file
// are dropped, and the remainder must carry an allowed source extension or be one
// of the extensionless build files (Dockerfile, Makefile, LICENSE).
//
// [NewBatch] combines the filter with the [MaxFiles] cap: a selection that would
// send more files than the cap is downgraded to an empty batch with
// LimitExceeded set. [Bundle] reads the accepted files concurrently and joins
// them using the START OF FILE / END OF FILE convention.
package intake
