package engine

import (
	"bytes"
	"fmt"
	"io"
)

// joinResult pairs a host with its fully accumulated, finalized output.
type joinResult struct {
	host   Host
	output []byte
}

// JoinAggregator computes JOIN mode's byte-identical equivalence classes
// over the finished hosts and writes the final report. It runs once,
// after every host has finished, never concurrently with the scheduler's
// dispatch loop.
type JoinAggregator struct {
	results []joinResult
}

func newJoinAggregator() *JoinAggregator {
	return &JoinAggregator{}
}

func (j *JoinAggregator) record(host Host, output []byte) {
	j.results = append(j.results, joinResult{host: host, output: output})
}

// Report writes the aggregate report to w: a header naming the number of
// unique classes, then one block per class in order of first occurrence,
// each listing its member hosts (in host-list order) followed by the
// class's output with a trailing newline appended if absent.
func (j *JoinAggregator) Report(w io.Writer) error {
	total := len(j.results)
	classOf := make([]int, total)
	for i := range classOf {
		classOf[i] = -1
	}

	type class struct {
		output []byte
		hosts  []string
	}
	var classes []class

	for i := range j.results {
		if classOf[i] != -1 {
			continue
		}
		id := len(classes)
		classOf[i] = id
		classes = append(classes, class{output: j.results[i].output, hosts: []string{j.results[i].host.Display}})
		for k := i + 1; k < total; k++ {
			if classOf[k] != -1 {
				continue
			}
			if bytes.Equal(j.results[k].output, j.results[i].output) {
				classOf[k] = id
				classes[id].hosts = append(classes[id].hosts, j.results[k].host.Display)
			}
		}
	}

	if _, err := fmt.Fprintf(w, "finished with %d unique result(s)\n", len(classes)); err != nil {
		return err
	}
	for _, c := range classes {
		if _, err := fmt.Fprintf(w, "hosts (%d/%d):", len(c.hosts), total); err != nil {
			return err
		}
		for _, h := range c.hosts {
			if _, err := fmt.Fprintf(w, " %s", h); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		out := c.output
		if len(out) == 0 || out[len(out)-1] != '\n' {
			out = append(append([]byte{}, out...), '\n')
		}
		if _, err := w.Write(out); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
