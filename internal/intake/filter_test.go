package intake

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules_Reviewable(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		path string
		want bool
	}{
		{"main.go", true},
		{"src/app.tsx", true},
		{"project/src/styles/site.scss", true},
		{"config/settings.toml", true},
		{"Dockerfile", true},
		{"deploy/Makefile", true},
		{"LICENSE", true},
		{"dockerfile", false},
		{"makefile", false},
		{"Dockerfile.dev", false},
		{"MyDockerfile", false},
		{"README", false},
		{".gitignore", false},
		{"app/.env", false},
		{"package-lock.json", false},
		{"web/yarn.lock", false},
		{"pnpm-lock.yaml", false},
		{"assets/.DS_Store", false},
		{"src/node_modules/x/index.js", false},
		{"node_modules/react/index.js", false},
		{"proj/.git/config.json", false},
		{"proj/dist/bundle.js", false},
		{"proj/build/out.go", false},
		{"proj/out/a.ts", false},
		{"proj/coverage/lcov.json", false},
		{"proj/.vscode/settings.json", false},
		{"proj/.idea/workspace.xml", false},
		{"proj/__pycache__/mod.py", false},
		{"proj/venv/lib/site.py", false},
		{"proj/.next/server.js", false},
		{"proj/.nuxt/app.vue", false},
		{"image.png", false},
		{"archive.tar.gz", false},
		{"trailing.", false},
		{"", false},
		{"go", false},
		{"builder/main.go", true},
		{"distribution/a.js", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.Reviewable(tt.path))
		})
	}
}

func TestRules_IgnoredDir(t *testing.T) {
	rules := DefaultRules()
	for _, name := range []string{"build", "dist", "out", "node_modules", ".git"} {
		assert.True(t, rules.IgnoredDir(name), name)
	}
	for _, name := range []string{"proj", "src", "Build", "build.go"} {
		assert.False(t, rules.IgnoredDir(name), name)
	}
}

func TestFilterProjectFiles_PreservesOrder(t *testing.T) {
	in := []Candidate{
		FromString("proj/b.go", ""),
		FromString("proj/node_modules/x.js", ""),
		FromString("proj/a.py", ""),
		FromString("proj/logo.svg", ""),
		FromString("proj/Makefile", ""),
	}

	got := FilterProjectFiles(in)

	require.Len(t, got, 3)
	assert.Equal(t, "proj/b.go", got[0].Path)
	assert.Equal(t, "proj/a.py", got[1].Path)
	assert.Equal(t, "proj/Makefile", got[2].Path)
}

func TestFilterProjectFiles_Empty(t *testing.T) {
	assert.Empty(t, FilterProjectFiles(nil))
	assert.Empty(t, FilterProjectFiles([]Candidate{}))
}

func TestFilter_CustomRules(t *testing.T) {
	rules := NewRules([]string{"vendor"}, nil, []string{".rb"}, []string{"Rakefile"})
	in := []Candidate{
		FromString("app/models/user.rb", ""),
		FromString("vendor/gem/lib.rb", ""),
		FromString("Rakefile", ""),
		FromString("main.go", ""),
	}

	got := Filter(rules, in)

	require.Len(t, got, 2)
	assert.Equal(t, "app/models/user.rb", got[0].Path)
	assert.Equal(t, "Rakefile", got[1].Path)
}

func TestFilter_Subsequence(t *testing.T) {
	var in []Candidate
	for i := 0; i < 50; i++ {
		ext := []string{".go", ".png", ".ts", ".lock"}[i%4]
		in = append(in, FromString(fmt.Sprintf("p/f%02d%s", i, ext), ""))
	}

	got := FilterProjectFiles(in)

	j := 0
	for _, c := range got {
		for j < len(in) && in[j].Path != c.Path {
			j++
		}
		require.Less(t, j, len(in), "output is not a subsequence of the input")
		j++
	}
	assert.Len(t, got, 25)
}
