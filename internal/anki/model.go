// Package anki writes study decks in the .apkg format read by Anki.
package anki

import (
	"regexp"
	"strings"
	"time"
)

// LeetCodeModelID identifies the note type across every generated deck, so
// re-importing a deck updates notes instead of duplicating them.
const LeetCodeModelID int64 = 1048217874

// LeetCodeFields are the note fields, in order.
var LeetCodeFields = []string{
	"ID",
	"Title",
	"TitleSlug",
	"Difficulty",
	"Description",
	"Tags",
	"TagSlugs",
	"Solution",
}

// Template is one card template of a note type.
type Template struct {
	Name  string
	Front string
	Back  string
}

// Model is an Anki note type.
type Model struct {
	ID        int64
	Name      string
	Fields    []string
	Templates []Template
	CSS       string
}

// LeetCodeModel returns the note type used for problem cards, with a single
// template built from the given front, back and stylesheet.
func LeetCodeModel(front, back, css string) *Model {
	fields := make([]string, len(LeetCodeFields))
	copy(fields, LeetCodeFields)
	return &Model{
		ID:        LeetCodeModelID,
		Name:      "LeetCode",
		Fields:    fields,
		Templates: []Template{{Name: "LeetCode", Front: front, Back: back}},
		CSS:       css,
	}
}

// fieldRefRe matches {{Field}}, {{#Field}}, {{^Field}} and {{filter:Field}}.
var fieldRefRe = regexp.MustCompile(`\{\{[#^]?(?:[^{}:]+:)*([^{}:#^/]+)\}\}`)

// requiredFields returns, per template, the ordinals of the fields the front
// side refers to. Anki generates a card when any of them is non-empty.
func (m *Model) requiredFields() [][]int {
	ords := make(map[string]int, len(m.Fields))
	for i, f := range m.Fields {
		ords[f] = i
	}

	req := make([][]int, len(m.Templates))
	for i, t := range m.Templates {
		seen := map[int]bool{}
		for _, match := range fieldRefRe.FindAllStringSubmatch(t.Front, -1) {
			if ord, ok := ords[strings.TrimSpace(match[1])]; ok && !seen[ord] {
				seen[ord] = true
				req[i] = append(req[i], ord)
			}
		}
		if len(req[i]) == 0 {
			req[i] = []int{0}
		}
	}
	return req
}

func (m *Model) toJSON(deckID int64, now time.Time) map[string]any {
	flds := make([]map[string]any, len(m.Fields))
	for i, name := range m.Fields {
		flds[i] = map[string]any{
			"name":   name,
			"ord":    i,
			"font":   "Arial",
			"media":  []any{},
			"rtl":    false,
			"size":   20,
			"sticky": false,
		}
	}

	req := m.requiredFields()
	tmpls := make([]map[string]any, len(m.Templates))
	reqJSON := make([][]any, len(m.Templates))
	for i, t := range m.Templates {
		tmpls[i] = map[string]any{
			"name":  t.Name,
			"ord":   i,
			"qfmt":  t.Front,
			"afmt":  t.Back,
			"bqfmt": "",
			"bafmt": "",
			"bfont": "",
			"bsize": 0,
			"did":   nil,
		}
		reqJSON[i] = []any{i, "any", req[i]}
	}

	return map[string]any{
		"id":        m.ID,
		"name":      m.Name,
		"type":      0,
		"mod":       now.Unix(),
		"usn":       -1,
		"sortf":     0,
		"did":       deckID,
		"tmpls":     tmpls,
		"flds":      flds,
		"css":       m.CSS,
		"latexPre":  latexPre,
		"latexPost": `\end{document}`,
		"latexsvg":  false,
		"req":       reqJSON,
		"tags":      []any{},
		"vers":      []any{},
	}
}

const latexPre = `\documentclass[12pt]{article}
\special{papersize=3in,5in}
\usepackage[utf8]{inputenc}
\usepackage{amssymb,amsmath}
\pagestyle{empty}
\setlength{\parindent}{0in}
\begin{document}
`
