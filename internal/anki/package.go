package anki

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jmoiron/sqlx"
	"github.com/klauspost/compress/zip"
	_ "modernc.org/sqlite"
)

const (
	collectionEntry = "collection.anki2"
	mediaEntry      = "media"
	fieldSeparator  = "\x1f"
)

// Package is a deck plus the note type its notes use, ready to be written as
// an .apkg file.
type Package struct {
	Deck  *Deck
	Model *Model

	// now is replaced in tests.
	now func() time.Time
}

// NewPackage returns a package for deck whose notes all use model.
func NewPackage(deck *Deck, model *Model) *Package {
	return &Package{Deck: deck, Model: model, now: time.Now}
}

// WriteToFile writes the package to path, replacing any existing file. The
// file is a zip archive holding the SQLite collection and an empty media
// manifest.
func (p *Package) WriteToFile(ctx context.Context, path string) error {
	for _, n := range p.Deck.Notes {
		if err := n.validate(p.Model); err != nil {
			return err
		}
	}

	tmp, err := os.MkdirTemp("", "leetdeck-apkg-")
	if err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	collection := filepath.Join(tmp, collectionEntry)
	if err := p.writeCollection(ctx, collection); err != nil {
		return err
	}

	partial := path + ".partial"
	if err := writeArchive(partial, collection); err != nil {
		_ = os.Remove(partial)
		return err
	}
	if err := os.Rename(partial, path); err != nil {
		_ = os.Remove(partial)
		return fmt.Errorf("move package into place: %w", err)
	}
	return nil
}

func writeArchive(path, collection string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create package: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	in, err := os.Open(collection)
	if err != nil {
		return err
	}
	defer in.Close()

	w, err := zw.Create(collectionEntry)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("archive collection: %w", err)
	}

	w, err = zw.Create(mediaEntry)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, "{}"); err != nil {
		return err
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish package: %w", err)
	}
	return out.Close()
}

func (p *Package) writeCollection(ctx context.Context, path string) error {
	conn, err := sqlx.Open("sqlite", "file:"+path)
	if err != nil {
		return fmt.Errorf("open collection: %w", err)
	}
	defer conn.Close()
	conn.SetMaxOpenConns(1)

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range collectionSchema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create collection schema: %w", err)
		}
	}

	now := p.now()
	if err := p.insertCol(ctx, tx, now); err != nil {
		return err
	}
	if err := p.insertNotes(ctx, tx, now); err != nil {
		return err
	}

	return tx.Commit()
}

func (p *Package) insertCol(ctx context.Context, tx *sqlx.Tx, now time.Time) error {
	models, err := json.Marshal(map[string]any{
		strconv.FormatInt(p.Model.ID, 10): p.Model.toJSON(p.Deck.ID, now),
	})
	if err != nil {
		return err
	}
	decks, err := json.Marshal(map[string]any{
		"1":                               defaultDeck,
		strconv.FormatInt(p.Deck.ID, 10): p.Deck.toJSON(now),
	})
	if err != nil {
		return err
	}
	conf, err := json.Marshal(collectionConf(p.Model.ID))
	if err != nil {
		return err
	}
	dconf, err := json.Marshal(map[string]any{"1": deckConf})
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO col (id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
		VALUES (1, ?, ?, ?, 11, 0, 0, 0, ?, ?, ?, ?, '{}')
	`, now.Unix(), now.UnixMilli(), now.UnixMilli(), string(conf), string(models), string(decks), string(dconf))
	if err != nil {
		return fmt.Errorf("insert collection row: %w", err)
	}
	return nil
}

func (p *Package) insertNotes(ctx context.Context, tx *sqlx.Tx, now time.Time) error {
	req := p.Model.requiredFields()
	// Note and card ids are millisecond timestamps made unique by counting up.
	nextID := now.UnixMilli()
	mod := now.Unix()

	for i, n := range p.Deck.Notes {
		sortField, err := stripHTML(n.SortField)
		if err != nil {
			return fmt.Errorf("note %q: %w", n.GUID, err)
		}
		noteID := nextID
		nextID++

		_, err = tx.ExecContext(ctx, `
			INSERT INTO notes (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
			VALUES (?, ?, ?, ?, -1, ?, ?, ?, ?, 0, '')
		`, noteID, n.GUID, p.Model.ID, mod, formatTags(n.Tags),
			strings.Join(n.Fields, fieldSeparator), sortField, checksum(sortField))
		if err != nil {
			return fmt.Errorf("insert note %q: %w", n.GUID, err)
		}

		for ord := range p.Model.Templates {
			if !anyNonEmpty(n.Fields, req[ord]) {
				continue
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO cards (id, nid, did, ord, mod, usn, type, queue, due, ivl, factor,
					reps, lapses, left, odue, odid, flags, data)
				VALUES (?, ?, ?, ?, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')
			`, nextID, noteID, p.Deck.ID, ord, mod, i)
			if err != nil {
				return fmt.Errorf("insert card for note %q: %w", n.GUID, err)
			}
			nextID++
		}
	}
	return nil
}

func anyNonEmpty(fields []string, ords []int) bool {
	for _, ord := range ords {
		if strings.TrimSpace(fields[ord]) != "" {
			return true
		}
	}
	return false
}

// formatTags renders tags the way Anki stores them: space separated with a
// leading and trailing space, or empty.
func formatTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return " " + strings.Join(tags, " ") + " "
}

// stripHTML returns the text content of an HTML fragment.
func stripHTML(s string) (string, error) {
	if !strings.ContainsAny(s, "<&") {
		return s, nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return "", fmt.Errorf("parse sort field: %w", err)
	}
	return doc.Text(), nil
}

// checksum is the first 32 bits of the SHA-1 of s, used by Anki to find
// duplicate notes.
func checksum(s string) int64 {
	sum := sha1.Sum([]byte(s))
	v, _ := strconv.ParseInt(hex.EncodeToString(sum[:4]), 16, 64)
	return v
}
