// Package crawl decides which solved problems are missing from the store and
// fetches them.
package crawl

import (
	"context"
	"errors"
	"fmt"

	"github.com/joestump/leetdeck/internal/leetcode"
	"github.com/joestump/leetdeck/internal/metrics"
	"github.com/joestump/leetdeck/internal/slug"
	"github.com/joestump/leetdeck/internal/store"
)

// Fetcher is the transport the orchestrator pulls problems through.
type Fetcher interface {
	FetchListing(ctx context.Context) ([]leetcode.ListingEntry, error)
	FetchQuestion(ctx context.Context, slug string) (*leetcode.Question, error)
}

// Repository is the part of the store the orchestrator writes through.
type Repository interface {
	ProblemExists(ctx context.Context, displayID int64) (bool, error)
	UpsertProblem(ctx context.Context, p *store.Problem, tags []store.Tag) error
}

// Result counts what one FetchAcceptedProblems run did.
type Result struct {
	Listed  int // entries in the listing
	Solved  int // entries with an accepted status
	Skipped int // solved entries already stored
	Added   int // solved entries fetched and stored
	Failed  int // solved entries whose fetch failed
}

// Orchestrator populates the store from the remote listing.
type Orchestrator struct {
	repo    Repository
	fetcher Fetcher
	events  Events
}

// New returns an Orchestrator. A nil events discards all events.
func New(repo Repository, fetcher Fetcher, events Events) *Orchestrator {
	if events == nil {
		events = nopEvents{}
	}
	return &Orchestrator{repo: repo, fetcher: fetcher, events: events}
}

// FetchAcceptedProblems fetches and stores every solved problem that is not
// stored yet. Candidates are handled one at a time in listing order.
//
// A failed listing fetch aborts the run. A transport failure on a single
// problem is reported through FetchFailed and the run moves on to the next
// candidate. Storage errors and cancellation abort the run.
func (o *Orchestrator) FetchAcceptedProblems(ctx context.Context) (Result, error) {
	var res Result

	entries, err := o.fetcher.FetchListing(ctx)
	if err != nil {
		return res, fmt.Errorf("fetch listing: %w", err)
	}
	res.Listed = len(entries)

	for _, e := range entries {
		if !e.Solved() {
			continue
		}
		res.Solved++

		exists, err := o.repo.ProblemExists(ctx, e.DisplayID)
		if err != nil {
			return res, err
		}
		if exists {
			res.Skipped++
			metrics.ProblemsSkippedTotal.Inc()
			continue
		}

		if err := o.fetchDetail(ctx, e.Slug, true, e.DisplayID); err != nil {
			if ctx.Err() != nil || !errors.Is(err, leetcode.ErrTransport) {
				return res, err
			}
			res.Failed++
			o.events.FetchFailed(e.Slug, err)
			continue
		}
		res.Added++
	}

	o.events.ProblemsAdded(res.Added)
	return res, nil
}

// FetchDetail fetches one problem by slug and stores it with its tags.
// accepted records whether the user has solved it. Invalid slugs and
// malformed responses are reported as leetcode.ErrTransport.
func (o *Orchestrator) FetchDetail(ctx context.Context, titleSlug string, accepted bool) error {
	return o.fetchDetail(ctx, titleSlug, accepted, 0)
}

// fetchDetail checks the detail against the listing entry it was found
// through. A wantDisplayID of 0 skips the display id check.
func (o *Orchestrator) fetchDetail(ctx context.Context, titleSlug string, accepted bool, wantDisplayID int64) error {
	if err := slug.Validate(titleSlug); err != nil {
		return fmt.Errorf("%w: %w", leetcode.ErrTransport, err)
	}

	q, err := o.fetcher.FetchQuestion(ctx, titleSlug)
	if err != nil {
		return err
	}
	if q.Slug != titleSlug {
		return fmt.Errorf("%w: asked for %q, got %q", leetcode.ErrTransport, titleSlug, q.Slug)
	}
	// The listing id is the dedup anchor, so a stored row must carry it.
	if wantDisplayID != 0 && q.DisplayID != wantDisplayID {
		return fmt.Errorf("%w: %q is problem %d in the listing but %d in its detail",
			leetcode.ErrTransport, titleSlug, wantDisplayID, q.DisplayID)
	}

	p, tags := toProblem(q, accepted)
	if err := o.repo.UpsertProblem(ctx, p, tags); err != nil {
		return fmt.Errorf("store problem %q: %w", titleSlug, err)
	}
	o.events.ProblemFetched(p.Slug, p.DisplayID)
	return nil
}

func toProblem(q *leetcode.Question, accepted bool) (*store.Problem, []store.Tag) {
	p := &store.Problem{
		DisplayID:   q.DisplayID,
		Level:       q.Difficulty,
		Title:       q.Title,
		Slug:        q.Slug,
		Description: q.Content,
		Accepted:    accepted,
	}
	tags := make([]store.Tag, 0, len(q.Tags))
	for _, t := range q.Tags {
		tags = append(tags, store.Tag{Name: t.Name, Slug: t.Slug})
	}
	return p, tags
}
