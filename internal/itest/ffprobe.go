//go:build integration

package itest

import (
	"encoding/json"
	"fmt"
	"os/exec"
)

type probeStream struct {
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	SampleRate string `json:"sample_rate"`
	Channels   int    `json:"channels"`
}

func probeStreams(path string) ([]probeStream, error) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-show_streams",
		"-of", "json",
		path,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("ffprobe: %w\n%s", err, string(b))
	}
	var out struct {
		Streams []probeStream `json:"streams"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}
	return out.Streams, nil
}

func findStream(streams []probeStream, codecType string) (probeStream, bool) {
	for _, s := range streams {
		if s.CodecType == codecType {
			return s, true
		}
	}
	return probeStream{}, false
}
