package anki

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoSumNote() *Note {
	return &Note{
		Fields: []string{
			"1", "Two Sum", "two-sum", "Easy", "<p>Given an array</p>",
			"Array;Hash Table", "array;hash-table", "",
		},
		GUID:      "1",
		SortField: "1",
		Tags:      []string{"array", "hash-table"},
	}
}

// openCollection extracts collection.anki2 from the package at path and
// opens it.
func openCollection(t *testing.T, path string) (*sqlx.DB, []string) {
	t.Helper()

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = zr.Close() })

	var names []string
	dest := filepath.Join(t.TempDir(), collectionEntry)
	for _, f := range zr.File {
		names = append(names, f.Name)
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, rc.Close())
		require.NoError(t, err)

		switch f.Name {
		case collectionEntry:
			require.NoError(t, os.WriteFile(dest, data, 0o600))
		case mediaEntry:
			assert.Equal(t, "{}", string(data))
		}
	}

	conn, err := sqlx.Open("sqlite", "file:"+dest)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn, names
}

func TestPackage_WriteToFile(t *testing.T) {
	deck := NewDeck(1234567890, "LeetCode")
	deck.AddNote(twoSumNote())
	model := LeetCodeModel("{{Title}}<br>{{Description}}", "{{FrontSide}}<hr id=answer>{{Solution}}", ".card {}")

	pkg := NewPackage(deck, model)
	pkg.now = func() time.Time { return time.UnixMilli(1700000000000) }

	path := filepath.Join(t.TempDir(), "LeetCode.apkg")
	require.NoError(t, pkg.WriteToFile(context.Background(), path))

	conn, names := openCollection(t, path)
	assert.ElementsMatch(t, []string{collectionEntry, mediaEntry}, names)

	var note struct {
		ID   int64  `db:"id"`
		GUID string `db:"guid"`
		MID  int64  `db:"mid"`
		Tags string `db:"tags"`
		Flds string `db:"flds"`
		Sfld string `db:"sfld"`
		Csum int64  `db:"csum"`
	}
	require.NoError(t, conn.Get(&note, `SELECT id, guid, mid, tags, flds, sfld, csum FROM notes`))
	assert.Equal(t, int64(1700000000000), note.ID)
	assert.Equal(t, "1", note.GUID)
	assert.Equal(t, LeetCodeModelID, note.MID)
	assert.Equal(t, " array hash-table ", note.Tags)
	assert.Equal(t, strings.Join(twoSumNote().Fields, "\x1f"), note.Flds)
	assert.Equal(t, "1", note.Sfld)
	// sha1("1") = 356a192b...
	assert.Equal(t, int64(0x356a192b), note.Csum)

	var cards []struct {
		NID int64 `db:"nid"`
		DID int64 `db:"did"`
		Ord int   `db:"ord"`
	}
	require.NoError(t, conn.Select(&cards, `SELECT nid, did, ord FROM cards`))
	require.Len(t, cards, 1)
	assert.Equal(t, note.ID, cards[0].NID)
	assert.Equal(t, int64(1234567890), cards[0].DID)
	assert.Zero(t, cards[0].Ord)

	var models, decks string
	require.NoError(t, conn.QueryRow(`SELECT models, decks FROM col`).Scan(&models, &decks))
	assert.Contains(t, models, `"1048217874"`)
	assert.Contains(t, models, `"name":"LeetCode"`)
	assert.Contains(t, models, `"req":[[0,"any",[1,4]]]`)
	assert.Contains(t, decks, `"1234567890"`)
}

func TestPackage_WriteToFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "LeetCode.apkg")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))

	deck := NewDeck(RandomDeckID(), "LeetCode")
	require.NoError(t, NewPackage(deck, LeetCodeModel("{{Title}}", "{{Solution}}", "")).WriteToFile(context.Background(), path))

	conn, _ := openCollection(t, path)
	var n int
	require.NoError(t, conn.Get(&n, `SELECT COUNT(*) FROM notes`))
	assert.Zero(t, n)

	_, err := os.Stat(path + ".partial")
	assert.True(t, os.IsNotExist(err))
}

func TestPackage_WriteToFile_RejectsBadNotes(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(n *Note)
	}{
		{name: "missing field", mutate: func(n *Note) { n.Fields = n.Fields[:7] }},
		{name: "tag with space", mutate: func(n *Note) { n.Tags = []string{"hash table"} }},
		{name: "no guid", mutate: func(n *Note) { n.GUID = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := twoSumNote()
			tt.mutate(n)
			deck := NewDeck(RandomDeckID(), "LeetCode")
			deck.AddNote(n)

			path := filepath.Join(t.TempDir(), "LeetCode.apkg")
			err := NewPackage(deck, LeetCodeModel("{{Title}}", "", "")).WriteToFile(context.Background(), path)
			require.Error(t, err)
			_, statErr := os.Stat(path)
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestRandomDeckID(t *testing.T) {
	for range 1000 {
		id := RandomDeckID()
		assert.GreaterOrEqual(t, id, int64(1<<30))
		assert.Less(t, id, int64(1<<31))
	}
}

func TestRequiredFields(t *testing.T) {
	m := LeetCodeModel("{{#Tags}}{{text:Tags}}{{/Tags}} {{ Title }} {{Unknown}}", "", "")
	assert.Equal(t, [][]int{{5, 1}}, m.requiredFields())

	m = LeetCodeModel("static front", "", "")
	assert.Equal(t, [][]int{{0}}, m.requiredFields())
}

func TestStripHTML(t *testing.T) {
	got, err := stripHTML("<b>Two</b> &amp; Sum")
	require.NoError(t, err)
	assert.Equal(t, "Two & Sum", got)
}

func TestFormatTags(t *testing.T) {
	assert.Equal(t, "", formatTags(nil))
	assert.Equal(t, " array ", formatTags([]string{"array"}))
}
