package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultWriterTimeout = 30 * time.Second

// sectionHeading opens the per-page report section appended by
// PublishPages.
const sectionHeading = "== Incohérences détectées =="

// Writer publishes rendered inconsistency reports to a MediaWiki
// instance through the edit API: a global summary page, plus a report
// section on every implicated page.
type Writer struct {
	client *http.Client
	apiURL string
	page   string
	logger *zap.Logger
}

// NewWriter builds a writer against apiURL (the wiki's api.php
// endpoint) targeting the named summary page. A nil logger is replaced
// by a nop.
func NewWriter(apiURL, page string, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{
		client: &http.Client{Timeout: defaultWriterTimeout},
		apiURL: apiURL,
		page:   page,
		logger: logger,
	}
}

// WithHTTPClient substitutes the HTTP client (tests).
func (w *Writer) WithHTTPClient(c *http.Client) *Writer {
	w.client = c
	return w
}

// WithTimeout sets the HTTP client timeout.
func (w *Writer) WithTimeout(d time.Duration) *Writer {
	w.client.Timeout = d
	return w
}

// Publish replaces the summary page body with the bullet list of
// lines. Each run is stamped with a fresh id in the edit summary so
// successive bot runs stay distinguishable in the page history.
func (w *Writer) Publish(ctx context.Context, lines []Line) error {
	token, err := w.csrfToken(ctx)
	if err != nil {
		return fmt.Errorf("csrf token: %w", err)
	}

	runID := uuid.NewString()
	body := Bulletize(lines)
	if body == "" {
		body = "Aucune incohérence détectée."
	}

	if err := w.edit(ctx, url.Values{
		"action":  {"edit"},
		"format":  {"json"},
		"title":   {w.page},
		"text":    {body},
		"summary": {"InferenceBot run " + runID},
		"bot":     {"1"},
		"token":   {token},
	}); err != nil {
		return err
	}

	w.logger.Info("report published",
		zap.String("page", w.page),
		zap.String("run_id", runID),
		zap.Int("lines", len(lines)))
	return nil
}

// PublishPages appends a report section to every page implicated by
// lines, grouped through GroupByPage, so each biography carries the
// inconsistencies that involve it. Pages without findings are left
// untouched.
func (w *Writer) PublishPages(ctx context.Context, lines []Line) error {
	order, grouped := GroupByPage(lines)
	if len(order) == 0 {
		return nil
	}

	token, err := w.csrfToken(ctx)
	if err != nil {
		return fmt.Errorf("csrf token: %w", err)
	}
	runID := uuid.NewString()

	for _, page := range order {
		title, err := pageTitle(page)
		if err != nil {
			w.logger.Warn("page skipped", zap.String("url", page), zap.Error(err))
			continue
		}

		body := "\n" + sectionHeading + "\n" + bulletList(grouped[page]) + "\n"
		if err := w.edit(ctx, url.Values{
			"action":     {"edit"},
			"format":     {"json"},
			"title":      {title},
			"appendtext": {body},
			"summary":    {"InferenceBot run " + runID},
			"bot":        {"1"},
			"token":      {token},
		}); err != nil {
			return fmt.Errorf("page %s: %w", title, err)
		}
		w.logger.Info("page report published",
			zap.String("page", title),
			zap.String("run_id", runID),
			zap.Int("messages", len(grouped[page])))
	}
	return nil
}

// pageTitle extracts the wiki title from a page URL: the title query
// parameter when present, the last path segment otherwise.
func pageTitle(pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}
	if t := u.Query().Get("title"); t != "" {
		return t, nil
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	title := segments[len(segments)-1]
	if title == "" {
		return "", fmt.Errorf("no title in page url %q", pageURL)
	}
	return url.PathUnescape(title)
}

// edit posts one edit-API call and decodes its outcome.
func (w *Writer) edit(ctx context.Context, form url.Values) error {
	resp, err := w.postForm(ctx, form)
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}

	var edit struct {
		Edit struct {
			Result string `json:"result"`
		} `json:"edit"`
		Error *struct {
			Code string `json:"code"`
			Info string `json:"info"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp, &edit); err != nil {
		return fmt.Errorf("edit: decode response: %w", err)
	}
	if edit.Error != nil {
		return fmt.Errorf("edit: %s: %s", edit.Error.Code, edit.Error.Info)
	}
	if edit.Edit.Result != "Success" {
		return fmt.Errorf("edit: unexpected result %q", edit.Edit.Result)
	}
	return nil
}

// csrfToken fetches an edit token from the wiki.
func (w *Writer) csrfToken(ctx context.Context) (string, error) {
	form := url.Values{
		"action": {"query"},
		"meta":   {"tokens"},
		"format": {"json"},
	}
	resp, err := w.postForm(ctx, form)
	if err != nil {
		return "", err
	}

	var query struct {
		Query struct {
			Tokens struct {
				CSRFToken string `json:"csrftoken"`
			} `json:"tokens"`
		} `json:"query"`
	}
	if err := json.Unmarshal(resp, &query); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if query.Query.Tokens.CSRFToken == "" {
		return "", fmt.Errorf("empty csrf token")
	}
	return query.Query.Tokens.CSRFToken, nil
}

func (w *Writer) postForm(ctx context.Context, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.apiURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
