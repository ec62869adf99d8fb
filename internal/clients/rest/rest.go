package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"insightflow/internal/models"
)

const pkg = "rest/"

// Client performs requests against one remote service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

func New(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL joins path onto the base URL and appends query, if any.
func (c *Client) URL(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Do sends the request. A transport failure is returned as a KindTransport
// *models.APIError carrying fallback as its message. The caller owns the body.
func (c *Client) Do(ctx context.Context, method string, rawURL string, header http.Header, body io.Reader, fallback string) (*http.Response, error) {
	op := pkg + "Do"

	log := c.log.With(slog.String("op", op), slog.String("method", method), slog.String("url", rawURL))

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, &models.APIError{Kind: models.KindTransport, Message: fallback, Err: fmt.Errorf("%s: %w", op, err)}
	}

	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("request failed", slog.String("error", err.Error()))
		return nil, &models.APIError{Kind: models.KindTransport, Message: fallback, Err: fmt.Errorf("%s: %w", op, err)}
	}

	log.Debug("request done", slog.Int("status", resp.StatusCode), slog.Duration("took", time.Since(start)))

	return resp, nil
}

// JSONBody encodes v as a request body.
func JSONBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%s: encode body: %w", pkg, err)
	}
	return bytes.NewReader(data), nil
}

// DecodeJSON reads a success body into v. A body that does not decode yields
// a KindFallback error with the given message.
func DecodeJSON(resp *http.Response, v any, fallback string) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &models.APIError{Kind: models.KindFallback, StatusCode: resp.StatusCode, Message: fallback, Err: err}
	}

	if err := json.Unmarshal(data, v); err != nil {
		return &models.APIError{Kind: models.KindFallback, StatusCode: resp.StatusCode, Message: fallback, Err: err}
	}

	return nil
}

// IsSuccess mirrors fetch's Response.ok.
func IsSuccess(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// Part is one part of a multipart body: a text field, or a file when File
// is set.
type Part struct {
	Name  string
	Value string
	File  *models.Upload
}

// MultipartBody encodes parts in order. The returned content type carries
// the generated boundary.
func MultipartBody(parts []Part) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for _, p := range parts {
		if p.File == nil {
			if err := writer.WriteField(p.Name, p.Value); err != nil {
				return nil, "", fmt.Errorf("%s: write field %s: %w", pkg, p.Name, err)
			}
			continue
		}

		w, err := createFilePart(writer, p.Name, p.File)
		if err != nil {
			return nil, "", fmt.Errorf("%s: create file part: %w", pkg, err)
		}
		if p.File.Reader != nil {
			if _, err := io.Copy(w, p.File.Reader); err != nil {
				return nil, "", fmt.Errorf("%s: copy file part: %w", pkg, err)
			}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("%s: close multipart: %w", pkg, err)
	}

	return buf, writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func createFilePart(writer *multipart.Writer, field string, file *models.Upload) (io.Writer, error) {
	filename := file.Filename
	if filename == "" {
		filename = "blob"
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(filename)))
	h.Set("Content-Type", contentType)

	return writer.CreatePart(h)
}
