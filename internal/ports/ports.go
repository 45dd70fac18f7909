package ports

import (
	"context"

	"github.com/mkravets/vdub/internal/types"
)

type VideoTool interface {
	// ExtractAudio demuxes the audio track of inVideo into a 16 kHz mono
	// signed 16-bit PCM wave file at outWav.
	ExtractAudio(ctx context.Context, inVideo, outWav string) error
	// ReplaceAudio combines the picture track of inVideo (stream-copied)
	// with inAudio (encoded to AAC) into outVideo.
	ReplaceAudio(ctx context.Context, inVideo, inAudio, outVideo string) error
}

type Transcriber interface {
	Transcribe(ctx context.Context, wavPath, lang, workDir string) (types.Transcript, error)
}

// Translation is one translated chunk. Truncated is set when the engine
// dropped trailing content to fit its sequence-length budget.
type Translation struct {
	Text      string
	Truncated bool
}

type Translator interface {
	Translate(ctx context.Context, text string) (Translation, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang, outPath string) error
}
