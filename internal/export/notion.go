package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/promptvault/promptvault/internal/models"
)

const (
	notionAPIBase    = "https://api.notion.com/v1"
	notionAPIVersion = "2022-06-28"
)

// ErrNotionNotConfigured means NOTION_API_KEY / NOTION_DATABASE_ID are not set.
var ErrNotionNotConfigured = errors.New("notion not configured")

// NotionExporter creates one page per prompt in a Notion database. Pages
// are created sequentially; the first failure aborts the export.
type NotionExporter struct {
	apiKey     string
	databaseID string
	client     *http.Client
}

func NewNotionExporter(apiKey, databaseID string) *NotionExporter {
	return &NotionExporter{
		apiKey:     apiKey,
		databaseID: databaseID,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured reports whether both credentials are present.
func (e *NotionExporter) Configured() bool {
	return e.apiKey != "" && e.databaseID != ""
}

// Export pushes the prompts to Notion and returns how many pages were
// created before the first failure.
func (e *NotionExporter) Export(ctx context.Context, prompts []models.Prompt) (int, error) {
	if !e.Configured() {
		return 0, ErrNotionNotConfigured
	}

	for i, p := range prompts {
		if err := e.createPage(ctx, p); err != nil {
			return i, err
		}
	}
	return len(prompts), nil
}

func (e *NotionExporter) createPage(ctx context.Context, prompt models.Prompt) error {
	body := map[string]interface{}{
		"parent": map[string]string{"database_id": e.databaseID},
		"properties": map[string]interface{}{
			"Name": map[string]interface{}{
				"title": []map[string]interface{}{
					{"text": map[string]string{"content": prompt.Title}},
				},
			},
		},
		"children": []map[string]interface{}{
			notionParagraph(prompt.Description),
			notionParagraph("Tags: " + strings.Join(prompt.Tags, ", ")),
			notionParagraph(prompt.Text),
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, notionAPIBase+"/pages", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Notion-Version", notionAPIVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notion page create failed: status %d", resp.StatusCode)
	}
	return nil
}

func notionParagraph(text string) map[string]interface{} {
	return map[string]interface{}{
		"object": "block",
		"type":   "paragraph",
		"paragraph": map[string]interface{}{
			"rich_text": []map[string]interface{}{
				{"type": "text", "text": map[string]string{"content": text}},
			},
		},
	}
}
