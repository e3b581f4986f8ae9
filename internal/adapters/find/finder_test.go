package find_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pollwatch/internal/adapters/find"
	"go.trai.ch/pollwatch/internal/core/domain"
)

func requireFind(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("find(1) is not available on windows")
	}
	if _, err := exec.LookPath("find"); err != nil {
		t.Skip("find not in PATH")
	}
}

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(f), 0o600))
	}
}

func TestListArgs(t *testing.T) {
	assert.Equal(t, []string{"./", "-type", "f"}, find.ListArgs(nil))
	assert.Equal(t, []string{
		"./",
		"-not", "(", "-name", ".git", "-prune", ")",
		"-not", "(", "-name", "node_modules", "-prune", ")",
		"-type", "f",
	}, find.ListArgs([]string{".git", "node_modules"}))
}

func TestSecondsAgo(t *testing.T) {
	assert.Equal(t, "2 seconds ago", find.SecondsAgo(1))
	assert.Equal(t, "1 seconds ago", find.SecondsAgo(0))
}

func TestParse(t *testing.T) {
	got := find.Parse("./a.txt\n\n./src/main.go\n./src//main.go\n")
	assert.Equal(t, []string{"a.txt", "src/main.go"}, got.Sorted())

	assert.True(t, find.Parse("").IsEmpty())

	got = find.Parse("./a.txt\n./a.txt \n./ a.txt\n")
	assert.Equal(t, []string{" a.txt", "a.txt", "a.txt "}, got.Sorted())
}

func TestFinder_ListAll(t *testing.T) {
	requireFind(t)

	root := t.TempDir()
	writeTree(t, root, "a.txt", "src/main.go", "node_modules/big.js", ".git/config")

	got, err := find.NewFinder().ListAll(t.Context(), root, []string{".git", "node_modules"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "src/main.go"}, got.Sorted())
}

func TestFinder_ListModifiedSince(t *testing.T) {
	requireFind(t)

	root := t.TempDir()
	writeTree(t, root, "old.txt", "fresh.txt")
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(root, "old.txt"), old, old))

	got, err := find.NewFinder().ListModifiedSince(t.Context(), root, 30, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh.txt"}, got.Sorted())
}

func TestFinder_MissingRoot(t *testing.T) {
	requireFind(t)

	got, err := find.NewFinder().ListAll(t.Context(), filepath.Join(t.TempDir(), "gone"), nil)
	require.ErrorIs(t, err, domain.ErrEnumerationFailed)
	assert.True(t, got.IsEmpty())
	assert.NotNil(t, got.Sorted())
}

func TestFinder_MissingBinary(t *testing.T) {
	root := t.TempDir()

	_, err := find.NewFinder(find.WithBinary(filepath.Join(root, "no-such-find"))).ListAll(t.Context(), root, nil)
	require.ErrorIs(t, err, domain.ErrEnumerationFailed)
	require.ErrorContains(t, err, "failed to run find")
}

func TestFinder_OutputTooLarge(t *testing.T) {
	requireFind(t)

	root := t.TempDir()
	files := make([]string, 0, 64)
	for i := range 64 {
		files = append(files, "dir/"+strings.Repeat("x", 40)+string(rune('a'+i%26))+strings.Repeat("y", i))
	}
	writeTree(t, root, files...)

	_, err := find.NewFinder(find.WithMaxOutput(128)).ListAll(t.Context(), root, nil)
	require.ErrorIs(t, err, domain.ErrEnumerationFailed)
	require.ErrorIs(t, err, domain.ErrOutputTooLarge)
}
