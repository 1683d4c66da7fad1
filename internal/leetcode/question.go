package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const questionQuery = `query questionData($titleSlug: String!) {
  question(titleSlug: $titleSlug) {
    questionId
    questionFrontendId
    title
    titleSlug
    content
    difficulty
    topicTags {
      name
      slug
    }
  }
}`

// TopicTag is a (name, slug) pair attached to a question.
type TopicTag struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Question is the full record of one problem.
type Question struct {
	QuestionID int64
	DisplayID  int64
	Title      string
	Slug       string
	// Content is the HTML problem statement.
	Content    string
	Difficulty string
	Tags       []TopicTag
}

type graphQLRequest struct {
	OperationName string         `json:"operationName"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type questionResponse struct {
	Data struct {
		Question *struct {
			QuestionID         string     `json:"questionId"`
			QuestionFrontendID string     `json:"questionFrontendId"`
			Title              string     `json:"title"`
			TitleSlug          string     `json:"titleSlug"`
			Content            *string    `json:"content"`
			Difficulty         string     `json:"difficulty"`
			TopicTags          []TopicTag `json:"topicTags"`
		} `json:"question"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// FetchQuestion returns the full record of the problem identified by slug in
// a single GraphQL round trip.
func (c *Client) FetchQuestion(ctx context.Context, slug string) (*Question, error) {
	payload, err := json.Marshal(graphQLRequest{
		OperationName: "questionData",
		Query:         questionQuery,
		Variables:     map[string]any{"titleSlug": slug},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	body, err := c.do(ctx, "question", func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/graphql", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Referer", c.baseURL+"/problems/"+url.PathEscape(slug)+"/")
		return req, nil
	})
	if err != nil {
		return nil, err
	}

	var resp questionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode question %q: %w", ErrTransport, slug, err)
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("%w: question %q: %s", ErrTransport, slug, strings.Join(msgs, "; "))
	}
	raw := resp.Data.Question
	if raw == nil {
		return nil, fmt.Errorf("%w: question %q not found", ErrTransport, slug)
	}

	q := &Question{
		Title:      raw.Title,
		Slug:       raw.TitleSlug,
		Difficulty: raw.Difficulty,
		Tags:       raw.TopicTags,
	}
	if raw.Content != nil {
		q.Content = *raw.Content
	}
	if q.QuestionID, err = strconv.ParseInt(raw.QuestionID, 10, 64); err != nil {
		return nil, fmt.Errorf("%w: question %q: questionId %q: %w", ErrTransport, slug, raw.QuestionID, err)
	}
	if q.DisplayID, err = strconv.ParseInt(raw.QuestionFrontendID, 10, 64); err != nil {
		return nil, fmt.Errorf("%w: question %q: questionFrontendId %q: %w", ErrTransport, slug, raw.QuestionFrontendID, err)
	}
	// Premium problems come back without content for users who cannot open
	// them; a record without a statement is not worth storing.
	if q.Title == "" || q.Slug == "" || q.Difficulty == "" || q.Content == "" {
		return nil, fmt.Errorf("%w: question %q: incomplete record", ErrTransport, slug)
	}
	return q, nil
}
