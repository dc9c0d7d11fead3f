package bench

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shubhang93/tablewr"
)

// Result is the timing summary for one k.
type Result struct {
	TopK     int
	Runs     []time.Duration
	Average  time.Duration
	Min      time.Duration
	Max      time.Duration
	Returned int
	Verified bool
}

// Line formats the result as "Average time for top_k = K: N ns".
func (r *Result) Line() string {
	return fmt.Sprintf("Average time for top_k = %d: %d ns", r.TopK, r.Average.Nanoseconds())
}

// summarize fills Average (integer mean, truncated), Min and Max from Runs.
func (r *Result) summarize() {
	if len(r.Runs) == 0 {
		return
	}
	var total time.Duration
	r.Min, r.Max = r.Runs[0], r.Runs[0]
	for _, d := range r.Runs {
		total += d
		r.Min = min(r.Min, d)
		r.Max = max(r.Max, d)
	}
	r.Average = total / time.Duration(len(r.Runs))
}

// Report is the outcome of one benchmark run.
type Report struct {
	StartedAt time.Time
	// Setup covers corpus generation and index build.
	Setup   time.Duration
	Elapsed time.Duration
	Config  Config
	Seed    int64
	Kernel  string
	Results []Result
}

// WriteText writes one summary line per k.
func (r *Report) WriteText(w io.Writer) error {
	for i := range r.Results {
		if _, err := fmt.Fprintln(w, r.Results[i].Line()); err != nil {
			return err
		}
	}
	return nil
}

// WriteTable renders the results as a table.
func (r *Report) WriteTable(w io.Writer) error {
	wr := tablewr.New(w, 0, tablewr.WithSep())
	data := [][]string{
		{"top_k", "runs", "avg ns", "min ns", "max ns", "returned", "verified"},
	}
	for _, res := range r.Results {
		data = append(data, []string{
			strconv.Itoa(res.TopK),
			strconv.Itoa(len(res.Runs)),
			strconv.FormatInt(res.Average.Nanoseconds(), 10),
			strconv.FormatInt(res.Min.Nanoseconds(), 10),
			strconv.FormatInt(res.Max.Nanoseconds(), 10),
			strconv.Itoa(res.Returned),
			strconv.FormatBool(res.Verified),
		})
	}
	return wr.Write(data)
}
