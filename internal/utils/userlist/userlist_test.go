package userlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/longles/Reddit-Downloader/internal/utils/logger"
)

func TestMain(m *testing.M) {
	logger.InitTestLogger()
	m.Run()
}

func TestFromFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "onePerLine",
			content: "alice\nbob\ncarol\n",
			want:    []string{"alice", "bob", "carol"},
		},
		{
			name:    "blankLinesAndWhitespace",
			content: "alice\n\n  bob  \n\n",
			want:    []string{"alice", "bob"},
		},
		{
			name:    "duplicatesKeepFirstPosition",
			content: "alice\nbob\nalice\n",
			want:    []string{"alice", "bob"},
		},
		{
			name:    "malformedNamesSkipped",
			content: "alice\n../escape\nbob\nbad name\n",
			want:    []string{"alice", "bob"},
		},
		{
			name:    "emptyFile",
			content: "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "users.txt")
			err := os.WriteFile(path, []byte(tt.content), 0644)
			assert.NoError(t, err)

			got, err := FromFile(path)

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromFile_MissingFile(t *testing.T) {
	got, err := FromFile(filepath.Join(t.TempDir(), "nope.txt"))

	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestFromFolders(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"alice", "bob"} {
		assert.NoError(t, os.Mkdir(filepath.Join(dir, name), 0755))
	}
	// A stray file must not become a username.
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	got, err := FromFolders(dir)

	assert.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, got)
}

func TestFromFolders_MissingDirectory(t *testing.T) {
	got, err := FromFolders(filepath.Join(t.TempDir(), "missing"))

	assert.NoError(t, err)
	assert.Empty(t, got)
}
