package ticket

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"github.com/kode4food/testgen/internal/config"
	"github.com/kode4food/testgen/pkg/api"
	"github.com/kode4food/testgen/pkg/log"
)

type (
	// JiraClient updates issues through the Jira REST API. The description
	// replaces the issue's description field and the payload is attached
	// as testData_<KEY>.json
	JiraClient struct {
		httpClient *http.Client
		baseURL    string
		username   string
		apiToken   string
		apiVersion string
	}

	// JiraOptions configures a JiraClient
	JiraOptions struct {
		BaseURL    string
		Username   string
		APIToken   string
		APIVersion string
		Timeout    time.Duration
	}

	jiraUpdate struct {
		Fields jiraFields `json:"fields"`
	}

	jiraFields struct {
		Description string `json:"description"`
	}
)

// StatusUpdated is reported after a successful ticket update
const StatusUpdated = api.TicketStatusUpdated

var _ Client = (*JiraClient)(nil)

// NewJiraClient creates a JiraClient. An empty API version selects the
// configured default
func NewJiraClient(opts *JiraOptions) *JiraClient {
	version := opts.APIVersion
	if version == "" {
		version = config.DefaultJiraAPIVersion
	}
	return &JiraClient{
		httpClient: &http.Client{Timeout: newHTTPTimeout(opts.Timeout)},
		baseURL:    trimBaseURL(opts.BaseURL),
		username:   opts.Username,
		apiToken:   opts.APIToken,
		apiVersion: version,
	}
}

// Update writes the description to the issue and then attaches the JSON
// payload. A failed description update skips the attachment
func (c *JiraClient) Update(
	ctx context.Context, req *Request,
) (*Response, error) {
	key, err := NormalizeKey(string(req.Ticket))
	if err != nil {
		return nil, err
	}

	if err := c.updateDescription(ctx, key, req.Description); err != nil {
		slog.Error("Failed to update ticket description",
			log.Ticket(key),
			log.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}

	if err := c.attachPayload(ctx, key, req.JSON); err != nil {
		slog.Error("Failed to attach ticket payload",
			log.Ticket(key),
			log.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}

	slog.Info("Ticket updated",
		log.Ticket(key))
	return &Response{Status: StatusUpdated}, nil
}

func (c *JiraClient) updateDescription(
	ctx context.Context, key api.TicketKey, desc string,
) error {
	body, err := json.Marshal(jiraUpdate{
		Fields: jiraFields{Description: desc},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPut, c.issueURL(key), bytes.NewReader(body),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	_, err = c.do(req)
	return err
}

func (c *JiraClient) attachPayload(
	ctx context.Context, key api.TicketKey, payload string,
) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", AttachmentName(key))
	if err != nil {
		return err
	}
	if _, err := io.WriteString(fw, payload); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.issueURL(key)+"/attachments", &buf,
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Atlassian-Token", "no-check")

	res, err := c.do(req)
	if err != nil {
		return err
	}

	gjson.ParseBytes(res).ForEach(func(_, att gjson.Result) bool {
		slog.Debug("Ticket attachment stored",
			log.Ticket(key),
			slog.String("attachment_id", att.Get("id").String()),
			slog.String("filename", att.Get("filename").String()),
			slog.Int64("size", att.Get("size").Int()))
		return true
	})
	return nil
}

func (c *JiraClient) do(req *http.Request) ([]byte, error) {
	c.setAuth(req)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("jira returned HTTP %d: %s",
			resp.StatusCode, jiraErrorMessage(body))
	}
	return body, nil
}

func (c *JiraClient) setAuth(req *http.Request) {
	if c.username != "" {
		creds := c.username + ":" + c.apiToken
		auth := base64.StdEncoding.EncodeToString([]byte(creds))
		req.Header.Set("Authorization", "Basic "+auth)
		return
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}
}

func (c *JiraClient) issueURL(key api.TicketKey) string {
	return fmt.Sprintf("%s/rest/api/%s/issue/%s",
		c.baseURL, c.apiVersion, url.PathEscape(string(key)))
}

// AttachmentName returns the file name of a ticket's payload attachment
func AttachmentName(key api.TicketKey) string {
	return "testData_" + string(key) + ".json"
}

func jiraErrorMessage(body []byte) string {
	res := gjson.GetBytes(body, "errorMessages.0")
	if res.Exists() {
		return res.String()
	}
	if errs := gjson.GetBytes(body, "errors"); errs.IsObject() {
		return errs.Raw
	}
	return string(body)
}
