// Package render builds the study deck from stored problems.
package render

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joestump/leetdeck/internal/anki"
	"github.com/joestump/leetdeck/internal/config"
	"github.com/joestump/leetdeck/internal/logger"
	"github.com/joestump/leetdeck/internal/markup"
	"github.com/joestump/leetdeck/internal/metrics"
	"github.com/joestump/leetdeck/internal/store"
)

// Repository is the read side of the store the renderer needs.
type Repository interface {
	ListProblems(ctx context.Context) ([]*store.Problem, error)
	TagsOf(ctx context.Context, problemID string) ([]*store.Tag, error)
	SolutionOf(ctx context.Context, problemID string) (*store.Solution, error)
}

// Options configures a Renderer.
type Options struct {
	DeckName string
	Output   string
	Log      logger.Logger
}

// Summary describes a written deck.
type Summary struct {
	DeckID int64
	Notes  int
	Output string
}

// Renderer turns stored problems into an Anki package.
type Renderer struct {
	repo  Repository
	model *anki.Model
	opts  Options
}

// New returns a Renderer whose cards use the given templates.
func New(repo Repository, tmpl *Templates, opts Options) *Renderer {
	if opts.Log == nil {
		opts.Log = logger.NewNop()
	}
	if opts.DeckName == "" {
		opts.DeckName = "LeetCode"
	}
	return &Renderer{
		repo:  repo,
		model: anki.LeetCodeModel(tmpl.Front, tmpl.Back, tmpl.CSS),
		opts:  opts,
	}
}

// BuildNote produces the note for p. A problem without a solution gets an
// empty Solution field.
func (r *Renderer) BuildNote(ctx context.Context, p *store.Problem) (*anki.Note, error) {
	tags, err := r.repo.TagsOf(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("tags of problem %d: %w", p.DisplayID, err)
	}
	names := make([]string, len(tags))
	slugs := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
		slugs[i] = t.Slug
	}

	description, err := markup.Transform(p.Description)
	if err != nil {
		return nil, fmt.Errorf("description of problem %d: %w", p.DisplayID, err)
	}

	var solution string
	sol, err := r.repo.SolutionOf(ctx, p.ID)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("solution of problem %d: %w", p.DisplayID, err)
	default:
		solution, err = markup.Transform(sol.Content)
		if err != nil {
			return nil, fmt.Errorf("solution of problem %d: %w", p.DisplayID, err)
		}
	}

	id := strconv.FormatInt(p.DisplayID, 10)
	return &anki.Note{
		Fields: []string{
			id,
			p.Title,
			p.Slug,
			p.Level,
			description,
			strings.Join(names, ";"),
			strings.Join(slugs, ";"),
			solution,
		},
		GUID:      id,
		SortField: id,
		Tags:      slugs,
	}, nil
}

// RenderDeck writes one note per stored problem to the configured output
// path under a freshly drawn deck id.
func (r *Renderer) RenderDeck(ctx context.Context) (Summary, error) {
	if r.opts.Output == "" {
		return Summary{}, fmt.Errorf("%w: deck output path is empty", config.ErrConfiguration)
	}

	problems, err := r.repo.ListProblems(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("list problems: %w", err)
	}
	metrics.ProblemsStored.Set(float64(len(problems)))

	deck := anki.NewDeck(anki.RandomDeckID(), r.opts.DeckName)
	for _, p := range problems {
		note, err := r.BuildNote(ctx, p)
		if err != nil {
			return Summary{}, err
		}
		deck.AddNote(note)
	}

	if err := anki.NewPackage(deck, r.model).WriteToFile(ctx, r.opts.Output); err != nil {
		return Summary{}, fmt.Errorf("write deck %s: %w", r.opts.Output, err)
	}
	metrics.NotesRenderedTotal.Add(float64(len(deck.Notes)))

	r.opts.Log.Info("deck written",
		logger.String("path", r.opts.Output),
		logger.Int64("deck_id", deck.ID),
		logger.Int("notes", len(deck.Notes)),
	)
	return Summary{DeckID: deck.ID, Notes: len(deck.Notes), Output: r.opts.Output}, nil
}
