package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/mkravets/vdub/internal/ports"
	"github.com/mkravets/vdub/internal/ports/adapters/coqui"
	"github.com/mkravets/vdub/internal/ports/adapters/ffmpeg"
	"github.com/mkravets/vdub/internal/ports/adapters/marian"
	"github.com/mkravets/vdub/internal/ports/adapters/whispercpp"
	"github.com/mkravets/vdub/internal/usecase"
)

type Config struct {
	InputVideo string
	OutDir     string
	// WorkRoot is where per-run scratch directories are created.
	// Defaults to the OS temp dir.
	WorkRoot string

	SourceLang string
	TargetLang string
	ChunkWords int
	// Threads is a worker-count hint forwarded to the recognition
	// engine; the pipeline itself is strictly sequential.
	Threads int

	FFmpegPath   string
	WhisperBin   string
	WhisperModel string
	MarianURL    string
	CoquiURL     string

	Logger *zap.Logger
}

func (c Config) Validate() error {
	if c.InputVideo == "" {
		return errors.New("input is empty")
	}
	if _, err := os.Stat(c.InputVideo); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if c.SourceLang == "" {
		return errors.New("source language is required")
	}
	if c.TargetLang == "" {
		return errors.New("target language is required")
	}
	if c.ChunkWords <= 0 {
		return errors.New("chunk words must be > 0")
	}
	if c.Threads < 0 {
		return errors.New("threads must be >= 0")
	}
	if c.WhisperModel == "" {
		return errors.New("whisper model path is required")
	}
	if err := validateBaseURL("marian", c.MarianURL); err != nil {
		return err
	}
	return validateBaseURL("coqui", c.CoquiURL)
}

func validateBaseURL(name, raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s URL: %w", name, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("invalid %s URL %q: absolute URL with host is required", name, raw)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return nil
	default:
		return fmt.Errorf("invalid %s URL %q: http or https is required", name, raw)
	}
}

// Run wires the external tools into the orchestrator and processes one
// video, returning the output path. Every failure comes back as a single
// error; nothing panics or propagates past this boundary.
func Run(ctx context.Context, cfg Config) (string, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "out"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	v := ffmpeg.New(cfg.FFmpegPath)
	asr := whispercpp.New(cfg.WhisperBin, cfg.WhisperModel, cfg.Threads)
	mt := marian.New(cfg.MarianURL, cfg.SourceLang, cfg.TargetLang, log)
	tts := coqui.New(cfg.CoquiURL, log)

	// Inference device placement belongs to the translation server; we
	// only report what it chose.
	if device, err := mt.Status(ctx); err != nil {
		log.Warn("translation server status unavailable", zap.Error(err))
	} else {
		log.Info("translation server ready", zap.String("device", device))
	}

	uc := usecase.New(usecase.Deps{
		Video:  v,
		ASR:    asr,
		MT:     mt,
		TTS:    tts,
		Logger: log,
	})

	res, err := uc.Run(ctx, usecase.Input{
		InputVideo: cfg.InputVideo,
		OutDir:     outDir,
		WorkRoot:   cfg.WorkRoot,
		SourceLang: cfg.SourceLang,
		TargetLang: cfg.TargetLang,
		ChunkWords: cfg.ChunkWords,
	})
	if err != nil {
		return "", err
	}

	log.Info("done", zap.String("output", res.OutputPath))
	return res.OutputPath, nil
}

// ensure adapters implement ports
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
var _ ports.Transcriber = (*whispercpp.Adapter)(nil)
var _ ports.Translator = (*marian.Adapter)(nil)
var _ ports.Synthesizer = (*coqui.Adapter)(nil)
