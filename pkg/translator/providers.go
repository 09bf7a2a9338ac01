package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

var ErrEmptyResult = errors.New("translator: empty translation")

const (
	defaultGoogleURL   = "https://translation.googleapis.com/language/translate/v2"
	defaultMyMemoryURL = "https://api.mymemory.translated.net/get"

	maxResponseBody = 1 << 20
)

// LibreTranslate 自建或托管的 LibreTranslate 实例
type LibreTranslate struct {
	client *http.Client
	url    string
	apiKey string
}

func NewLibreTranslate(client *http.Client, endpoint, apiKey string) *LibreTranslate {
	return &LibreTranslate{client: client, url: endpoint, apiKey: apiKey}
}

func (p *LibreTranslate) Name() string { return "libretranslate" }

type libreRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type libreResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error"`
}

func (p *LibreTranslate) Translate(ctx context.Context, text, source, target string) (string, error) {
	body := libreRequest{Q: text, Source: source, Target: target, Format: "text", APIKey: p.apiKey}

	var resp libreResponse
	if err := postJSON(ctx, p.client, p.url, body, &resp); err != nil {
		return "", fmt.Errorf("libretranslate: %w", err)
	}
	if resp.Error != "" {
		return "", fmt.Errorf("libretranslate: %s", resp.Error)
	}
	return resp.TranslatedText, nil
}

// Google Cloud Translation v2
type Google struct {
	client *http.Client
	url    string
	apiKey string
}

func NewGoogle(client *http.Client, endpoint, apiKey string) *Google {
	if endpoint == "" {
		endpoint = defaultGoogleURL
	}
	return &Google{client: client, url: endpoint, apiKey: apiKey}
}

func (p *Google) Name() string { return "google" }

type googleRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type googleResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

func (p *Google) Translate(ctx context.Context, text, source, target string) (string, error) {
	u, err := url.Parse(p.url)
	if err != nil {
		return "", fmt.Errorf("google: %w", err)
	}
	q := u.Query()
	q.Set("key", p.apiKey)
	u.RawQuery = q.Encode()

	var resp googleResponse
	body := googleRequest{Q: text, Source: source, Target: target, Format: "text"}
	if err := postJSON(ctx, p.client, u.String(), body, &resp); err != nil {
		// 错误信息里不能带上 key
		return "", fmt.Errorf("google: %w", redact(err, p.apiKey))
	}
	if len(resp.Data.Translations) == 0 {
		return "", fmt.Errorf("google: %w", ErrEmptyResult)
	}
	return resp.Data.Translations[0].TranslatedText, nil
}

// MyMemory 免费接口，无需配置
type MyMemory struct {
	client *http.Client
	url    string
	email  string
}

func NewMyMemory(client *http.Client, endpoint, email string) *MyMemory {
	if endpoint == "" {
		endpoint = defaultMyMemoryURL
	}
	return &MyMemory{client: client, url: endpoint, email: email}
}

func (p *MyMemory) Name() string { return "mymemory" }

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	// 有时是数字有时是字符串
	ResponseStatus  json.RawMessage `json:"responseStatus"`
	ResponseDetails string          `json:"responseDetails"`
}

func (p *MyMemory) Translate(ctx context.Context, text, source, target string) (string, error) {
	u, err := url.Parse(p.url)
	if err != nil {
		return "", fmt.Errorf("mymemory: %w", err)
	}
	q := u.Query()
	q.Set("q", text)
	q.Set("langpair", source+"|"+target)
	if p.email != "" {
		q.Set("de", p.email)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("mymemory: %w", err)
	}

	var resp myMemoryResponse
	if err := do(p.client, req, &resp); err != nil {
		return "", fmt.Errorf("mymemory: %w", err)
	}
	if status := strings.Trim(string(resp.ResponseStatus), `"`); status != "" && status != "200" {
		return "", fmt.Errorf("mymemory: status %s: %s", status, resp.ResponseDetails)
	}
	return resp.ResponseData.TranslatedText, nil
}

func postJSON(ctx context.Context, client *http.Client, endpoint string, in, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return do(client, req, out)
}

func do(client *http.Client, req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	return json.Unmarshal(body, out)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func redact(err error, secret string) error {
	if secret == "" || !strings.Contains(err.Error(), secret) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), secret, "***"))
}
