package review

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/guardian/internal/intake"
)

func TestFromPaste(t *testing.T) {
	req, err := FromPaste("let x=1;", "ctx")
	require.NoError(t, err)
	assert.Equal(t, "--- START OF FILE main.js ---\nlet x=1;\n--- END OF FILE main.js ---", req.Code)
	assert.Equal(t, "ctx", req.Context)
	assert.Equal(t, ModePaste, req.Mode)
	assert.Equal(t, []string{"main.js"}, req.Files)
}

func TestFromPaste_Empty(t *testing.T) {
	for _, code := range []string{"", "   ", "\n\t\n"} {
		_, err := FromPaste(code, "")
		assert.Equal(t, ErrEmptyPaste, err)
		assert.True(t, errors.Is(err, ErrEmptyCode))
		assert.Equal(t, "Please paste some code to review.", err.Error())
	}
}

func TestFromFiles(t *testing.T) {
	batch := intake.NewBatch([]intake.Candidate{
		intake.FromString("proj/a.go", "package a"),
		intake.FromString("proj/node_modules/x.js", "ignored"),
		intake.FromString("proj/b.ts", "export {}"),
	}, intake.DefaultRules(), 0)

	req, err := FromFiles(context.Background(), batch, "", intake.BundleOptions{})
	require.NoError(t, err)
	assert.Equal(t, ModeUpload, req.Mode)
	assert.Equal(t, []string{"proj/a.go", "proj/b.ts"}, req.Files)
	assert.Equal(t,
		"--- START OF FILE proj/a.go ---\npackage a\n--- END OF FILE proj/a.go ---\n"+
			"\n"+
			"--- START OF FILE proj/b.ts ---\nexport {}\n--- END OF FILE proj/b.ts ---\n",
		req.Code)
}

func TestFromFiles_NoneAccepted(t *testing.T) {
	batch := intake.NewBatch([]intake.Candidate{
		intake.FromString("proj/logo.png", ""),
	}, intake.DefaultRules(), 0)

	_, err := FromFiles(context.Background(), batch, "", intake.BundleOptions{})
	assert.Equal(t, ErrNoFiles, err)
	var inputErr *InputError
	assert.True(t, errors.As(err, &inputErr))
}

func TestFromFiles_TooMany(t *testing.T) {
	var files []intake.Candidate
	for i := 0; i < 3; i++ {
		files = append(files, intake.FromString(fmt.Sprintf("p/f%d.go", i), "x"))
	}
	batch := intake.NewBatch(files, intake.DefaultRules(), 2)

	_, err := FromFiles(context.Background(), batch, "", intake.BundleOptions{})
	assert.ErrorIs(t, err, intake.ErrTooManyFiles)
}
