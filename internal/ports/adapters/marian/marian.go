// Package marian is a client for a MarianMT translation server.
package marian

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mkravets/vdub/internal/ports"
)

const (
	// maxLength is the encoded-sequence budget passed to the server.
	// Chunks that tokenize past it lose trailing content; the server
	// reports this via the truncated flag.
	maxLength = 512

	requestTimeout = 2 * time.Minute
)

type Adapter struct {
	baseURL string
	source  string
	target  string
	client  *http.Client
	logger  *zap.Logger
}

func New(baseURL, sourceLang, targetLang string, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		source:  sourceLang,
		target:  targetLang,
		client:  &http.Client{Timeout: requestTimeout},
		logger:  logger,
	}
}

type translateRequest struct {
	Text       string `json:"text"`
	Source     string `json:"source"`
	Target     string `json:"target"`
	MaxLength  int    `json:"max_length"`
	Truncation bool   `json:"truncation"`
}

type translateResponse struct {
	Translation string `json:"translation"`
	Truncated   bool   `json:"truncated"`
}

func (a *Adapter) Translate(ctx context.Context, text string) (ports.Translation, error) {
	body, err := json.Marshal(translateRequest{
		Text:       text,
		Source:     a.source,
		Target:     a.target,
		MaxLength:  maxLength,
		Truncation: true,
	})
	if err != nil {
		return ports.Translation{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return ports.Translation{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return ports.Translation{}, fmt.Errorf("translation server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(resp.Body)
		return ports.Translation{}, fmt.Errorf("translation server status %d: %s", resp.StatusCode, excerpt(string(rb), 400))
	}

	var out translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ports.Translation{}, fmt.Errorf("decode response: %w", err)
	}
	if out.Truncated {
		a.logger.Warn("translation chunk truncated by sequence-length budget",
			zap.Int("max_length", maxLength),
		)
	}
	return ports.Translation{Text: strings.TrimSpace(out.Translation), Truncated: out.Truncated}, nil
}

type statusResponse struct {
	Device string `json:"device"`
	Model  string `json:"model"`
}

// Status reports the execution device the server selected (e.g. "cuda"
// when an accelerator is available, else "cpu").
func (a *Adapter) Status(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/status", nil)
	if err != nil {
		return "", err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		rb, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("translation server status %d: %s", resp.StatusCode, excerpt(string(rb), 400))
	}

	var st statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return "", fmt.Errorf("decode status: %w", err)
	}
	return st.Device, nil
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
