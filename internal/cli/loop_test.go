package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInteract(t *testing.T) {
	tmp := t.TempDir()
	existing := filepath.Join(tmp, "clip.mp4")
	if err := os.WriteFile(existing, []byte("x"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	missing := filepath.Join(tmp, "nope.mp4")

	cases := []struct {
		name         string
		input        string
		runs         []string
		runErr       error
		wantContains []string
		wantMissing  []string
	}{
		{
			name:  "quit immediately",
			input: "q\n",
		},
		{
			name:         "missing path reprompts",
			input:        missing + "\nq\n",
			wantContains: []string{"no such file: " + missing},
		},
		{
			name:         "valid path runs once",
			input:        existing + "\nq\n",
			runs:         []string{existing},
			wantContains: []string{"wrote "},
		},
		{
			name:         "failure keeps loop alive",
			input:        existing + "\n" + existing + "\nq\n",
			runs:         []string{existing, existing},
			runErr:       errors.New("boom"),
			wantContains: []string{"processing failed"},
			wantMissing:  []string{"boom"},
		},
		{
			name:  "blank lines ignored",
			input: "\n\nq\n",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var got []string
			var out strings.Builder
			err := interact(strings.NewReader(tc.input), &out, func(path string) (string, error) {
				got = append(got, path)
				if tc.runErr != nil {
					return "", tc.runErr
				}
				return filepath.Join(tmp, "out", "translated_clip.mp4"), nil
			})
			if err != nil {
				t.Fatalf("interact: %v", err)
			}
			if len(got) != len(tc.runs) {
				t.Fatalf("run calls = %v, want %v", got, tc.runs)
			}
			for i := range got {
				if got[i] != tc.runs[i] {
					t.Fatalf("run call %d = %q, want %q", i, got[i], tc.runs[i])
				}
			}
			for _, want := range tc.wantContains {
				if !strings.Contains(out.String(), want) {
					t.Fatalf("output %q missing %q", out.String(), want)
				}
			}
			for _, not := range tc.wantMissing {
				if strings.Contains(out.String(), not) {
					t.Fatalf("output %q should not contain %q", out.String(), not)
				}
			}
		})
	}
}

func TestInteract_EOFEndsLoop(t *testing.T) {
	var out strings.Builder
	err := interact(strings.NewReader(""), &out, func(string) (string, error) {
		t.Fatal("run should not be called")
		return "", nil
	})
	if err != nil {
		t.Fatalf("interact: %v", err)
	}
}
