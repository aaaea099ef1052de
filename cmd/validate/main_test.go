package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chapterDoc = `{"settingList": [{"name": "cfg_sound.xlsx:Sound", "headerRow": 0, "rows": [
	{"strings": ["Label", "Type", "FileName"], "isCommentOut": 0},
	{"strings": ["theme", "Bgm", "bgm/theme.ogg"], "isCommentOut": 0}
]}]}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func bookDoc(rows string) string {
	return `{"importGridList": [{"name": "b", "headerRow": 0, "rows": [
		{"strings": ["Command", "Arg1", "Text"], "isCommentOut": 0},` + rows + `]}]}`
}

func TestBookValidator(t *testing.T) {
	v := &BookValidator{}
	chapter, err := v.loadChapter(writeTemp(t, "chapter.json", chapterDoc))
	require.NoError(t, err)

	t.Run("valid book", func(t *testing.T) {
		path := writeTemp(t, "intro.book.json", bookDoc(`
			{"strings": ["Bgm", "theme"], "isCommentOut": 0},
			{"strings": ["", "", "Hello"], "isCommentOut": 0}`))
		assert.NoError(t, v.validateFile(chapter, path))
	})

	t.Run("issues are collected", func(t *testing.T) {
		path := writeTemp(t, "bad.book.json", bookDoc(`
			{"strings": ["Bgm", "missing"], "isCommentOut": 0},
			{"strings": ["Jump", "x"], "isCommentOut": 0}`))
		err := v.validateFile(chapter, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `sound "missing" is not in the chapter`)
		assert.Contains(t, err.Error(), `unknown command "Jump"`)
	})

	t.Run("wrong extension", func(t *testing.T) {
		path := writeTemp(t, "intro.json", bookDoc(`{"strings": ["", "", "Hi"], "isCommentOut": 0}`))
		assert.ErrorContains(t, v.validateFile(chapter, path), "extension")
	})

	t.Run("no nodes", func(t *testing.T) {
		path := writeTemp(t, "empty.book.json", `{"importGridList": []}`)
		assert.ErrorContains(t, v.validateFile(chapter, path), "no playable nodes")
	})
}

func TestLoadChapter_Empty(t *testing.T) {
	v := &BookValidator{}
	_, err := v.loadChapter(writeTemp(t, "chapter.json", `{"settingList": []}`))
	assert.Error(t, err)
}
