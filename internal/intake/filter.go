package intake

import (
	"io"
	"strings"
)

// Candidate is one user-selected file awaiting an include/exclude decision.
type Candidate struct {
	// Path is folder-root-relative and slash separated, or a bare file name.
	Path string
	// Open returns the file content. It is only called for accepted files.
	Open func() (io.ReadCloser, error)
}

type set map[string]struct{}

func newSet(items ...string) set {
	s := make(set, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

func (s set) has(item string) bool {
	_, ok := s[item]
	return ok
}

// Rules holds the allow and deny sets used to decide whether a path is
// reviewable. A Rules value is never modified after construction.
type Rules struct {
	ignoredDirs  set
	ignoredFiles set
	allowedExts  set
	bareNames    set
}

// NewRules builds a rule set. Extensions include their leading dot.
func NewRules(ignoredDirs, ignoredFiles, allowedExts, bareNames []string) Rules {
	return Rules{
		ignoredDirs:  newSet(ignoredDirs...),
		ignoredFiles: newSet(ignoredFiles...),
		allowedExts:  newSet(allowedExts...),
		bareNames:    newSet(bareNames...),
	}
}

var (
	defaultIgnoredDirs = []string{
		"node_modules", ".git", "dist", "build", "out", "coverage",
		".vscode", ".idea", "__pycache__", "venv", ".next", ".nuxt",
	}
	defaultIgnoredFiles = []string{
		"package-lock.json", "yarn.lock", "pnpm-lock.yaml", ".DS_Store",
	}
	defaultAllowedExts = []string{
		// Web
		".js", ".ts", ".jsx", ".tsx", ".html", ".css", ".scss", ".json", ".md", ".vue", ".svelte",
		".py",
		".java", ".gradle", ".xml",
		".go",
		".rs",
		".cs",
		".c", ".cpp", ".h", ".hpp",
		".sh",
		// Config
		".yml", ".yaml", ".toml",
	}
	defaultBareNames = []string{"Dockerfile", "Makefile", "LICENSE"}

	defaultRules = NewRules(defaultIgnoredDirs, defaultIgnoredFiles, defaultAllowedExts, defaultBareNames)
)

// DefaultRules returns the built-in rule set.
func DefaultRules() Rules {
	return defaultRules
}

// IgnoredDir reports whether a folder called name is skipped wherever it
// appears in a path.
func (r Rules) IgnoredDir(name string) bool {
	return r.ignoredDirs.has(name)
}

// Reviewable reports whether a file at path should be sent for review. The
// decision looks at path segments and the file name only.
func (r Rules) Reviewable(path string) bool {
	parts := strings.Split(path, "/")
	for _, part := range parts {
		if r.ignoredDirs.has(part) {
			return false
		}
	}

	fileName := parts[len(parts)-1]
	if r.ignoredFiles.has(fileName) {
		return false
	}

	// A leading-dot name such as ".gitignore" yields the extension ".gitignore",
	// which is not allowed, and it is not extensionless either.
	if i := strings.LastIndex(fileName, "."); i >= 0 {
		return r.allowedExts.has(fileName[i:])
	}

	return r.bareNames.has(fileName)
}

// Filter returns the candidates accepted by rules, in input order.
func Filter(rules Rules, candidates []Candidate) []Candidate {
	accepted := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if rules.Reviewable(c.Path) {
			accepted = append(accepted, c)
		}
	}
	return accepted
}

// FilterProjectFiles filters candidates with [DefaultRules].
func FilterProjectFiles(candidates []Candidate) []Candidate {
	return Filter(defaultRules, candidates)
}
