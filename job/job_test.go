// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package job_test

import (
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/mdhall272/beastlier/job"
)

func TestJob(t *testing.T) {
	j := job.New()

	runs := []job.Run{
		{ID: "1_1_2", Trace: "pTree_1_1_2.net.txt", Truth: "network_1_1_2.csv", Output: "out/1_1_2"},
		{ID: "1_1_1", Trace: "pTree_1_1_1.net.txt", Truth: "network_1_1_1.csv", Output: "out/1_1_1"},
		{ID: "2_1_1", Trace: "pTree_2_1_1.net.txt"},
	}
	for _, r := range runs {
		if err := j.Add(r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	want := []job.Run{
		runs[1],
		runs[0],
		{ID: "2_1_1", Trace: "pTree_2_1_1.net.txt", Output: "2_1_1"},
	}
	testJob(t, j, want)

	name := "tmp-job-for-test.tab"
	defer os.Remove(name)

	j.SetName(name)
	if err := j.Write(); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	nj, err := job.Read(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	testJob(t, nj, want)
}

func testJob(t testing.TB, j *job.Job, want []job.Run) {
	t.Helper()

	if got := j.Runs(); !reflect.DeepEqual(got, want) {
		t.Errorf("runs: got %v, want %v", got, want)
	}
	for _, w := range want {
		if r, ok := j.Run(w.ID); !ok || r != w {
			t.Errorf("run %q: got %v, want %v", w.ID, r, w)
		}
	}
}

func TestJobErrors(t *testing.T) {
	j := job.New()
	if err := j.Add(job.Run{Trace: "a.txt"}); err == nil {
		t.Errorf("empty id: expecting error")
	}
	if err := j.Add(job.Run{ID: "a"}); err == nil {
		t.Errorf("empty trace: expecting error")
	}
	j.Add(job.Run{ID: "a", Trace: "a.txt"})
	if err := j.Add(job.Run{ID: "a", Trace: "b.txt"}); err == nil {
		t.Errorf("repeated id: expecting error")
	}

	if _, err := job.ReadTSV(strings.NewReader("id\ttrace\n1\ta.txt\n")); err == nil {
		t.Errorf("missing fields: expecting error")
	}
}
