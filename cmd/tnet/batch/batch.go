// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package batch implements a command
// to summarize the network traces
// of a batch job.
package batch

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/js-arias/command"
	"github.com/mdhall272/beastlier/accuracy"
	"github.com/mdhall272/beastlier/consensus"
	"github.com/mdhall272/beastlier/job"
	"github.com/mdhall272/beastlier/summary"
	"github.com/mdhall272/beastlier/trace"
)

var Command = &command.Command{
	Usage: `batch [-b|--burnin <value>] [--states] [--skip]
	[--cpu <number>] [--brief <file>] [--summary <file>] <job-file>`,
	Short: "summarize the network traces of a job",
	Long: `
Command batch reads a job file and, for each run in the job, finds the
maximum credibility networks of the run trace and, if the run has a true
network, compares the sampled parents of each node with the true parents.

The argument of the command is the name of the job file. A job file is a
tab-delimited file with the following columns:

	- id      the identifier of the run
	- trace   the network trace file
	- truth   the true network file (it can be empty)
	- output  the prefix for the output files of the run

Here is an example file:

	# batch job
	id	trace	truth	output
	1_1	pTree_1_1.net.txt	network_1_1.csv	out/run_1_1
	1_2	pTree_1_2.net.txt	network_1_2.csv	out/run_1_2

For each run, the best networks are written in a file with the output prefix
and the suffix "-mpc.csv" (see "tnet mpc"). If the run has a true network, the
report of each node is written in a file with the suffix "-detail.txt" (see
"tnet analyse").

By default, all samples are used. With the flag --burnin, or -b, the
indicated number of data lines will be discarded. If the flag --states is
defined, the burn-in value is compared with the state index of each sample.

By default, a sample with a node that does not reach the root of the network
is an error. If the flag --skip is defined, such samples will be ignored.

Runs are analyzed in parallel, using all available processors. Use the flag
--cpu to change the number of processors.

If the flag --brief is defined, a line for each node of each run with a true
network will be appended to the indicated file (see "tnet analyse").

A tab-delimited summary with the number of nodes correctly assigned by each
network in each run is printed in the standard output. Use the flag --summary
to define an output file.

If any run fails, no output file is written.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var burnin int64
var inStates bool
var skipFlag bool
var numCPU int
var briefFile string
var summaryFile string

func setFlags(c *command.Command) {
	c.Flags().Int64Var(&burnin, "burnin", 0, "")
	c.Flags().Int64Var(&burnin, "b", 0, "")
	c.Flags().BoolVar(&inStates, "states", false, "")
	c.Flags().BoolVar(&skipFlag, "skip", false, "")
	c.Flags().IntVar(&numCPU, "cpu", runtime.GOMAXPROCS(0), "")
	c.Flags().StringVar(&briefFile, "brief", "", "")
	c.Flags().StringVar(&summaryFile, "summary", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting job file")
	}

	j, err := job.Read(args[0])
	if err != nil {
		return err
	}
	runs := j.Runs()
	if len(runs) == 0 {
		return fmt.Errorf("on file %q: no runs defined", args[0])
	}

	opt := summary.Options{
		Burnin: trace.Burnin{
			Value:    burnin,
			InStates: inStates,
		},
		Skip: skipFlag,
	}
	res := analyzeRuns(runs, opt, numCPU)

	for _, r := range res {
		for _, w := range r.warnings {
			fmt.Fprintf(c.Stderr(), "WARNING: run %q: %s\n", r.run.ID, w)
		}
	}
	if err := writeOutputs(res); err != nil {
		return err
	}

	if briefFile != "" {
		if err := appendBrief(briefFile, res); err != nil {
			return err
		}
	}

	if summaryFile == "" {
		return writeSummary(c.Stdout(), args[0], res)
	}
	if err := writeSummaryFile(summaryFile, args[0], res); err != nil {
		return err
	}
	return nil
}

type result struct {
	run      job.Run
	samples  int
	results  []accuracy.Result
	detail   *accuracy.Detail
	outputs  []output
	warnings []string
	err      error
}

// An output is the content of an output file.
type output struct {
	name string
	data []byte
}

type runChanType struct {
	run job.Run
	opt summary.Options
	res *result
	wg  *sync.WaitGroup
}

// analyzeRuns analyzes each run of a job in parallel.
// The results are in the same order as the runs.
func analyzeRuns(runs []job.Run, opt summary.Options, cpu int) []result {
	if cpu <= 0 {
		cpu = runtime.NumCPU()
	}
	runChan := make(chan runChanType, cpu*2)
	for range cpu {
		go func() {
			for rc := range runChan {
				*rc.res = analyze(rc.run, rc.opt)
				rc.wg.Done()
			}
		}()
	}

	res := make([]result, len(runs))
	var wg sync.WaitGroup
	for i, r := range runs {
		wg.Add(1)
		runChan <- runChanType{
			run: r,
			opt: opt,
			res: &res[i],
			wg:  &wg,
		}
	}
	wg.Wait()
	close(runChan)
	return res
}

// analyze processes a single run.
func analyze(r job.Run, opt summary.Options) result {
	res := result{run: r}

	s, err := summary.Read(r.Trace, opt)
	if err != nil {
		res.err = err
		return res
	}
	for _, e := range s.Skipped {
		res.warnings = append(res.warnings, fmt.Sprintf("on file %q: skipped sample: %v", r.Trace, e))
	}
	if u := s.Sel.Unobserved(); u > 0 {
		res.warnings = append(res.warnings, fmt.Sprintf("on file %q: %d node values without credibility", r.Trace, u))
	}
	res.samples = s.Agg.Samples()
	if res.samples == 0 {
		res.err = fmt.Errorf("on file %q: no samples after burn-in (%d rows read)", r.Trace, s.Rows)
		return res
	}

	var t *accuracy.Truth
	if r.Truth != "" {
		t, err = accuracy.Read(r.Truth, s.Nodes)
		if err != nil {
			res.err = err
			return res
		}
	}

	assign, err := s.Assignments()
	if err != nil {
		res.err = err
		return res
	}
	var buf bytes.Buffer
	if err := accuracy.WriteCSV(&buf, assign, t); err != nil {
		res.err = err
		return res
	}
	res.outputs = append(res.outputs, output{name: r.Output + "-mpc.csv", data: buf.Bytes()})
	if t == nil {
		return res
	}

	for _, as := range assign {
		ar, err := accuracy.Score(as, t)
		if err != nil {
			res.err = err
			return res
		}
		res.results = append(res.results, ar)
	}

	d, err := accuracy.NewDetail(s.Agg, consensus.Parent, t)
	if err != nil {
		res.err = err
		return res
	}
	var dBuf bytes.Buffer
	if err := d.WriteDetail(&dBuf); err != nil {
		res.err = err
		return res
	}
	res.outputs = append(res.outputs, output{name: r.Output + "-detail.txt", data: dBuf.Bytes()})
	res.detail = &d
	return res
}

// writeOutputs writes the output files of the runs.
// If any run has an error,
// no file is written.
func writeOutputs(res []result) error {
	for _, r := range res {
		if r.err != nil {
			return fmt.Errorf("run %q: %v", r.run.ID, r.err)
		}
	}
	for _, r := range res {
		for _, o := range r.outputs {
			if err := os.WriteFile(o.name, o.data, 0o644); err != nil {
				return fmt.Errorf("run %q: %v", r.run.ID, err)
			}
		}
	}
	return nil
}

func appendBrief(name string, res []result) (err error) {
	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if err == nil && e != nil {
			err = e
		}
	}()

	for _, r := range res {
		if r.detail == nil {
			continue
		}
		if err := r.detail.AppendBrief(f, r.run.ID); err != nil {
			return fmt.Errorf("while writing to %q: %v", name, err)
		}
	}
	return nil
}

func writeSummaryFile(name, jobFile string, res []result) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if err == nil && e != nil {
			err = e
		}
	}()

	if err := writeSummary(f, jobFile, res); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}

func writeSummary(w io.Writer, jobFile string, res []result) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# tnet.batch, job %q\n", jobFile)
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))

	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true
	if err := tsv.Write([]string{"id", "samples", "network", "correct", "total", "proportion"}); err != nil {
		return err
	}

	for _, r := range res {
		for _, ar := range r.results {
			row := []string{
				r.run.ID,
				strconv.Itoa(r.samples),
				ar.Name,
				strconv.Itoa(ar.Correct),
				strconv.Itoa(ar.Total),
				strconv.FormatFloat(ar.Proportion(), 'f', 6, 64),
			}
			if err := tsv.Write(row); err != nil {
				return err
			}
		}
		if r.detail == nil {
			continue
		}
		row := []string{
			r.run.ID,
			strconv.Itoa(r.samples),
			"detail",
			strconv.Itoa(r.detail.Correct),
			strconv.Itoa(len(r.detail.Nodes)),
			strconv.FormatFloat(r.detail.Proportion(), 'f', 6, 64),
		}
		if err := tsv.Write(row); err != nil {
			return err
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return err
	}
	return bw.Flush()
}
