// Package coqui is a client for a Coqui-style TTS server.
package coqui

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Synthesis of long texts is slow, so the timeout is generous.
const requestTimeout = 10 * time.Minute

type Adapter struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func New(baseURL string, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: requestTimeout},
		logger:  logger,
	}
}

func (a *Adapter) Synthesize(ctx context.Context, text, lang, outPath string) error {
	q := url.Values{}
	q.Set("text", text)
	q.Set("language_id", lang)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/api/tts?"+q.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("tts server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		rb, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("tts server status %d: %s", resp.StatusCode, excerpt(string(rb), 400))
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	n, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write synthesized audio: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("tts server returned empty audio")
	}
	a.logger.Debug("synthesized audio written",
		zap.String("path", outPath),
		zap.Int64("bytes", n),
	)
	return nil
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
