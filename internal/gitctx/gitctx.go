package gitctx

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/dshills/guardian/internal/intake"
)

// RepoMeta contains repository metadata.
type RepoMeta struct {
	Root   string
	Head   string
	Branch string
}

// GetRepoMeta collects repository metadata for the working tree containing dir.
func GetRepoMeta(dir string) (RepoMeta, error) {
	root, err := gitOutput(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return RepoMeta{}, fmt.Errorf("not a git repository: %w", err)
	}
	head, err := gitOutput(dir, "rev-parse", "HEAD")
	if err != nil {
		head = "" // new repo with no commits
	}
	branch, err := gitOutput(dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		branch = ""
	}
	return RepoMeta{
		Root:   strings.TrimSpace(root),
		Head:   strings.TrimSpace(head),
		Branch: strings.TrimSpace(branch),
	}, nil
}

// Tracked returns the tracked and untracked-but-not-ignored files under dir,
// in lexical order, as intake candidates. Paths start with dir's base name.
// Files deleted from the working tree are skipped.
func Tracked(dir string) ([]intake.Candidate, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving folder: %w", err)
	}
	out, err := gitOutput(abs, "ls-files", "-z", "--cached", "--others", "--exclude-standard")
	if err != nil {
		return nil, fmt.Errorf("git ls-files: %w", err)
	}

	files := splitNUL(out)

	base := filepath.Base(abs)
	candidates := make([]intake.Candidate, 0, len(files))
	for _, rel := range files {
		full := filepath.Join(abs, filepath.FromSlash(rel))
		info, err := os.Lstat(full)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		candidates = append(candidates, fileCandidate(path.Join(base, rel), full))
	}
	return candidates, nil
}

func fileCandidate(rel, full string) intake.Candidate {
	return intake.Candidate{
		Path: rel,
		Open: func() (io.ReadCloser, error) {
			return os.Open(full)
		},
	}
}

// splitNUL splits ls-files -z output into sorted, unique paths. A path can be
// listed twice when it is both cached and untracked-modified.
func splitNUL(out string) []string {
	var files []string
	for _, f := range strings.Split(out, "\x00") {
		if f != "" {
			files = append(files, f)
		}
	}
	sort.Strings(files)
	return slices.Compact(files)
}

func gitOutput(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), fmt.Errorf("%s: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}
