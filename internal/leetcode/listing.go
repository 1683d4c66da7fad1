package leetcode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/joestump/leetdeck/internal/logger"
)

// StatusAccepted is the listing status of a problem the user has solved.
const StatusAccepted = "ac"

// ListingEntry is one problem of the user's listing.
type ListingEntry struct {
	QuestionID int64
	DisplayID  int64
	Slug       string
	Title      string
	// Status is "ac", "notac" or empty when never attempted.
	Status   string
	PaidOnly bool
}

// Solved reports whether the user has an accepted submission.
func (e ListingEntry) Solved() bool {
	return e.Status == StatusAccepted
}

type listingResponse struct {
	UserName        string `json:"user_name"`
	StatStatusPairs []struct {
		Stat struct {
			QuestionID         json.RawMessage `json:"question_id"`
			FrontendQuestionID json.RawMessage `json:"frontend_question_id"`
			Title              string          `json:"question__title"`
			TitleSlug          string          `json:"question__title_slug"`
		} `json:"stat"`
		Status   *string `json:"status"`
		PaidOnly bool    `json:"paid_only"`
	} `json:"stat_status_pairs"`
}

// FetchListing returns every problem of the archive with the signed-in user's
// status, in the order the archive lists them. Entries whose ids cannot be
// read are logged and left out.
func (c *Client) FetchListing(ctx context.Context) ([]ListingEntry, error) {
	body, err := c.do(ctx, "listing", func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/problems/all/", nil)
	})
	if err != nil {
		return nil, err
	}

	var resp listingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode listing: %w", ErrTransport, err)
	}
	if resp.UserName == "" {
		return nil, fmt.Errorf("%w: listing is anonymous, check the session cookie", ErrTransport)
	}

	entries := make([]ListingEntry, 0, len(resp.StatStatusPairs))
	for _, pair := range resp.StatStatusPairs {
		questionID, err := parseID(pair.Stat.QuestionID)
		if err != nil {
			c.log.Warn("skipping listing entry", logger.String("slug", pair.Stat.TitleSlug),
				logger.String("field", "question_id"), logger.Error(err))
			continue
		}
		displayID, err := parseID(pair.Stat.FrontendQuestionID)
		if err != nil {
			c.log.Warn("skipping listing entry", logger.String("slug", pair.Stat.TitleSlug),
				logger.String("field", "frontend_question_id"), logger.Error(err))
			continue
		}
		e := ListingEntry{
			QuestionID: questionID,
			DisplayID:  displayID,
			Slug:       pair.Stat.TitleSlug,
			Title:      pair.Stat.Title,
			PaidOnly:   pair.PaidOnly,
		}
		if pair.Status != nil {
			e.Status = *pair.Status
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// parseID reads a positive id sent either as a JSON number or as a string.
func parseID(raw json.RawMessage) (int64, error) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %s", raw)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid id %d", id)
	}
	return id, nil
}
