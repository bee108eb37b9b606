package intake

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FromString returns a candidate whose content is held in memory.
func FromString(path, content string) Candidate {
	return Candidate{
		Path: path,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

// Walk lists every regular file under root as a candidate, in lexical order,
// with paths relative to root's parent so the folder name leads each path the
// way a browser folder picker reports it. Nothing is filtered here so the
// caller can report the full count.
func Walk(root string) ([]Candidate, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("opening folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving folder: %w", err)
	}
	base := filepath.Dir(abs)

	var candidates []Candidate
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		candidates = append(candidates, fileCandidate(filepath.ToSlash(rel), path))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return candidates, nil
}

func fileCandidate(rel, path string) Candidate {
	return Candidate{
		Path: rel,
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}
