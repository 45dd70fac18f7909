package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// interact reads video paths until "q". A missing path is rejected with a
// message and the prompt repeats; a failed run prints a failure line and
// the loop continues. Errors never escape past this function, except
// reader failures.
func interact(r io.Reader, w io.Writer, run func(path string) (string, error)) error {
	sc := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, "video (q to quit)> ")
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "q" {
			return nil
		}
		if _, err := os.Stat(line); err != nil {
			fmt.Fprintf(w, "no such file: %s\n", line)
			continue
		}
		out, err := run(line)
		if err != nil {
			fmt.Fprintln(w, "processing failed, see log for details")
			continue
		}
		fmt.Fprintf(w, "wrote %s\n", out)
	}
}
