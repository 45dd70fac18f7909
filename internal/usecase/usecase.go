package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mkravets/vdub/internal/domain/textchunk"
	"github.com/mkravets/vdub/internal/ports"
)

// ErrEmptyTranscript is returned when the recognition engine yields no
// usable text, which makes the remaining stages pointless.
var ErrEmptyTranscript = errors.New("transcription produced no text")

type Deps struct {
	Video  ports.VideoTool
	ASR    ports.Transcriber
	MT     ports.Translator
	TTS    ports.Synthesizer
	Logger *zap.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return Usecase{d: d}
}

type Input struct {
	InputVideo string
	OutDir     string
	// WorkRoot is the base for the per-run scratch directory; os.TempDir()
	// when empty.
	WorkRoot   string
	SourceLang string
	TargetLang string
	ChunkWords int
}

type Result struct {
	OutputPath      string
	TruncatedChunks int
}

// OutputName prefixes the source file's base name, keeping its extension.
func OutputName(inputVideo string) string {
	return "translated_" + filepath.Base(inputVideo)
}

// Run drives the five stages in order: extract audio, transcribe,
// translate, synthesize, remux. The first failing stage aborts the rest.
// All intermediates live in a per-run scratch directory that is removed
// on every exit path.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	workRoot := in.WorkRoot
	if workRoot == "" {
		workRoot = os.TempDir()
	}
	workDir := filepath.Join(workRoot, "vdub-"+uuid.NewString())
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return Result{}, err
	}
	defer os.RemoveAll(workDir)

	log := u.d.Logger

	wav := filepath.Join(workDir, "audio.wav")
	log.Info("extracting audio", zap.String("input", in.InputVideo))
	if err := u.d.Video.ExtractAudio(ctx, in.InputVideo, wav); err != nil {
		log.Error("audio extraction failed", zap.Error(err))
		return Result{}, fmt.Errorf("extract audio: %w", err)
	}

	log.Info("transcribing", zap.String("lang", in.SourceLang))
	tr, err := u.d.ASR.Transcribe(ctx, wav, in.SourceLang, workDir)
	if err != nil {
		log.Error("transcription failed", zap.Error(err))
		return Result{}, fmt.Errorf("transcribe: %w", err)
	}
	transcript := tr.Text()
	if transcript == "" {
		log.Error("transcription produced no text")
		return Result{}, ErrEmptyTranscript
	}

	log.Info("translating", zap.Int("chunk_words", in.ChunkWords))
	translated, truncated, err := u.translate(ctx, transcript, in.ChunkWords)
	if err != nil {
		log.Error("translation failed", zap.Error(err))
		return Result{}, fmt.Errorf("translate: %w", err)
	}
	if truncated > 0 {
		log.Warn("translation chunks lost trailing content to the sequence-length budget",
			zap.Int("truncated_chunks", truncated))
	}

	dubbed := filepath.Join(workDir, "speech.mp3")
	log.Info("synthesizing speech", zap.String("lang", in.TargetLang))
	if err := u.d.TTS.Synthesize(ctx, translated, in.TargetLang, dubbed); err != nil {
		log.Error("speech synthesis failed", zap.Error(err))
		return Result{}, fmt.Errorf("synthesize: %w", err)
	}

	outPath := filepath.Join(in.OutDir, OutputName(in.InputVideo))
	log.Info("remuxing", zap.String("output", outPath))
	if err := u.d.Video.ReplaceAudio(ctx, in.InputVideo, dubbed, outPath); err != nil {
		log.Error("remux failed", zap.Error(err))
		return Result{}, fmt.Errorf("remux: %w", err)
	}

	return Result{OutputPath: outPath, TruncatedChunks: truncated}, nil
}

// translate runs chunks through the engine one at a time, in order, and
// joins the results positionally.
func (u Usecase) translate(ctx context.Context, transcript string, chunkWords int) (string, int, error) {
	var (
		parts     []string
		truncated int
	)
	for chunk := range textchunk.Chunks(transcript, chunkWords) {
		res, err := u.d.MT.Translate(ctx, chunk)
		if err != nil {
			return "", 0, err
		}
		if res.Truncated {
			truncated++
		}
		if res.Text != "" {
			parts = append(parts, res.Text)
		}
	}
	return strings.Join(parts, " "), truncated, nil
}
