package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mkravets/vdub/internal/pipeline"
)

// runTimeout bounds one full video; transcription of long inputs is the
// slow part.
const runTimeout = 3 * time.Hour

func buildLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func buildConfig(v *viper.Viper, input string, logger *zap.Logger) (pipeline.Config, error) {
	absIn, err := filepath.Abs(input)
	if err != nil {
		return pipeline.Config{}, err
	}
	return pipeline.Config{
		InputVideo:   absIn,
		OutDir:       v.GetString("out"),
		WorkRoot:     v.GetString("work-dir"),
		SourceLang:   v.GetString("source-lang"),
		TargetLang:   v.GetString("target-lang"),
		ChunkWords:   v.GetInt("chunk-words"),
		Threads:      v.GetInt("threads"),
		FFmpegPath:   v.GetString("ffmpeg"),
		WhisperBin:   v.GetString("whisper-bin"),
		WhisperModel: v.GetString("whisper-model"),
		MarianURL:    v.GetString("marian-url"),
		CoquiURL:     v.GetString("coqui-url"),
		Logger:       logger,
	}, nil
}

func runOnce(cmd *cobra.Command, v *viper.Viper, input string) error {
	logger, err := buildLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := buildConfig(v, input, logger)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
	defer cancel()

	out, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
	return nil
}

func runLoop(cmd *cobra.Command, v *viper.Viper) error {
	logger, err := buildLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	return interact(cmd.InOrStdin(), cmd.OutOrStdout(), func(input string) (string, error) {
		cfg, err := buildConfig(v, input, logger)
		if err != nil {
			return "", err
		}
		if err := cfg.Validate(); err != nil {
			return "", fmt.Errorf("config: %w", err)
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
		defer cancel()
		return pipeline.Run(ctx, cfg)
	})
}
