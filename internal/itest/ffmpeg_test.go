//go:build integration

package itest

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/mkravets/vdub/internal/ports/adapters/ffmpeg"
)

func requireTools(t *testing.T) {
	t.Helper()
	for _, tool := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not installed", tool)
		}
	}
}

// makeFixtureVideo builds a short mp4 with a black picture track and a
// sine-tone audio track.
func makeFixtureVideo(t *testing.T, dir string) string {
	t.Helper()
	in := filepath.Join(dir, "input.mp4")
	cmd := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi", "-i", "color=c=black:s=320x240:d=3",
		"-f", "lavfi", "-i", "sine=frequency=440:duration=3",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-shortest",
		in,
	)
	if b, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("ffmpeg fixture failed: %v\n%s", err, string(b))
	}
	return in
}

func makeFixtureAudio(t *testing.T, dir string) string {
	t.Helper()
	wav := filepath.Join(dir, "dub.wav")
	cmd := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi", "-i", "sine=frequency=880:duration=3",
		wav,
	)
	if b, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("ffmpeg fixture failed: %v\n%s", err, string(b))
	}
	return wav
}

func TestExtractAudio_ProducesMono16kPCM(t *testing.T) {
	requireTools(t)

	tmp := t.TempDir()
	in := makeFixtureVideo(t, tmp)
	outWav := filepath.Join(tmp, "audio.wav")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := ffmpeg.New("ffmpeg").ExtractAudio(ctx, in, outWav); err != nil {
		t.Fatalf("extract audio: %v", err)
	}

	streams, err := probeStreams(outWav)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	audio, ok := findStream(streams, "audio")
	if !ok {
		t.Fatalf("no audio stream in %s", outWav)
	}
	if audio.CodecName != "pcm_s16le" {
		t.Fatalf("codec = %s, want pcm_s16le", audio.CodecName)
	}
	if audio.SampleRate != "16000" {
		t.Fatalf("sample rate = %s, want 16000", audio.SampleRate)
	}
	if audio.Channels != 1 {
		t.Fatalf("channels = %d, want 1", audio.Channels)
	}
	if _, hasVideo := findStream(streams, "video"); hasVideo {
		t.Fatalf("extracted wav should not carry a video stream")
	}
}

func TestReplaceAudio_CopiesVideoEncodesAAC(t *testing.T) {
	requireTools(t)

	tmp := t.TempDir()
	in := makeFixtureVideo(t, tmp)
	dub := makeFixtureAudio(t, tmp)
	out := filepath.Join(tmp, "translated_input.mp4")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := ffmpeg.New("ffmpeg").ReplaceAudio(ctx, in, dub, out); err != nil {
		t.Fatalf("replace audio: %v", err)
	}

	streams, err := probeStreams(out)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	video, ok := findStream(streams, "video")
	if !ok {
		t.Fatalf("no video stream in %s", out)
	}
	if video.CodecName != "h264" {
		t.Fatalf("video codec = %s, want h264 (stream copy)", video.CodecName)
	}
	audio, ok := findStream(streams, "audio")
	if !ok {
		t.Fatalf("no audio stream in %s", out)
	}
	if audio.CodecName != "aac" {
		t.Fatalf("audio codec = %s, want aac", audio.CodecName)
	}
}
