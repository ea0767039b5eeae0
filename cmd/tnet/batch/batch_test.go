// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package batch

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/mdhall272/beastlier/job"
	"github.com/mdhall272/beastlier/summary"
)

var traceData = `state	A_infector	B_infector	C_infector
0	Start	A	A
1000	Start	A	B
2000	Start	A	A
`

var truthData = `child,parent
A,Start
B,A
C,A
`

func writeFile(t testing.TB, name, data string) {
	t.Helper()
	if err := os.WriteFile(name, []byte(data), 0o644); err != nil {
		t.Fatalf("unable to write %q: %v", name, err)
	}
}

func TestWriteOutputs(t *testing.T) {
	dir := t.TempDir()
	tr := filepath.Join(dir, "trace.txt")
	writeFile(t, tr, traceData)
	truth := filepath.Join(dir, "truth.csv")
	writeFile(t, truth, truthData)

	good := job.Run{ID: "good", Trace: tr, Truth: truth, Output: filepath.Join(dir, "good")}
	bad := job.Run{ID: "bad", Trace: filepath.Join(dir, "missing.txt"), Output: filepath.Join(dir, "bad")}

	res := analyzeRuns([]job.Run{good, bad}, summary.Options{}, 2)
	if res[0].err != nil {
		t.Fatalf("run %q: unexpected error: %v", good.ID, res[0].err)
	}
	if err := writeOutputs(res); err == nil {
		t.Fatalf("expecting error")
	}
	for _, name := range []string{good.Output + "-mpc.csv", good.Output + "-detail.txt"} {
		if _, err := os.Stat(name); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("file %q: written after a failed run", name)
		}
	}

	res = analyzeRuns([]job.Run{good}, summary.Options{}, 2)
	if err := writeOutputs(res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, name := range []string{good.Output + "-mpc.csv", good.Output + "-detail.txt"} {
		if _, err := os.Stat(name); err != nil {
			t.Errorf("file %q: %v", name, err)
		}
	}
	if len(res[0].results) != 8 {
		t.Errorf("results: got %d, want %d", len(res[0].results), 8)
	}
	if res[0].detail == nil || res[0].detail.Correct != 3 {
		t.Errorf("detail: expecting 3 correct nodes")
	}
}
