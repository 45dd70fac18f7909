package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mkravets/vdub/internal/domain/textchunk"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	v := viper.New()
	v.SetDefault("out", "out")
	v.SetDefault("work-dir", "")
	v.SetDefault("source-lang", "de")
	v.SetDefault("target-lang", "en")
	v.SetDefault("chunk-words", textchunk.DefaultWords)
	v.SetDefault("threads", 4)
	v.SetDefault("ffmpeg", "ffmpeg")
	v.SetDefault("whisper-bin", ".cache/bin/whisper.cpp")
	v.SetDefault("whisper-model", ".cache/models/ggml-base.bin")
	v.SetDefault("marian-url", "http://127.0.0.1:8100")
	v.SetDefault("coqui-url", "http://127.0.0.1:5002")
	v.SetEnvPrefix("VDUB")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:          "vdub [video]",
		Short:        "Dub a spoken-German video into English",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if len(args) == 1 {
				return runOnce(cmd, v, args[0])
			}
			return runLoop(cmd, v)
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags
	root.Flags().String("out", v.GetString("out"), "Output directory")
	root.Flags().String("source-lang", v.GetString("source-lang"), "Spoken language of the input")
	root.Flags().String("target-lang", v.GetString("target-lang"), "Language to dub into")
	root.Flags().Int("chunk-words", v.GetInt("chunk-words"), "Max words per translation chunk")
	root.Flags().Int("threads", v.GetInt("threads"), "Worker-count hint for the recognition engine")

	// Hidden tool/server wiring (internal)
	root.Flags().String("work-dir", v.GetString("work-dir"), "Scratch directory root")
	root.Flags().String("ffmpeg", v.GetString("ffmpeg"), "ffmpeg binary path")
	root.Flags().String("whisper-bin", v.GetString("whisper-bin"), "whisper.cpp binary path")
	root.Flags().String("whisper-model", v.GetString("whisper-model"), "whisper model path")
	root.Flags().String("marian-url", v.GetString("marian-url"), "Translation server base URL")
	root.Flags().String("coqui-url", v.GetString("coqui-url"), "TTS server base URL")
	for _, f := range []string{"work-dir", "ffmpeg", "whisper-bin", "whisper-model", "marian-url", "coqui-url"} {
		_ = root.Flags().MarkHidden(f)
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
