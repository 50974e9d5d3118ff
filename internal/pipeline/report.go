package pipeline

import (
	"errors"
	"fmt"
	"time"

	"git.home.luguber.info/inful/tarotbuild/internal/metrics"
)

// BuildOutcome is the final result of a build.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = metrics.OutcomeSuccess
	OutcomeFailed   BuildOutcome = metrics.OutcomeFailed
	OutcomeCanceled BuildOutcome = metrics.OutcomeCanceled
)

// Report captures what one build did.
type Report struct {
	BuildID        string
	Start          time.Time
	End            time.Time
	StageDurations map[StageName]time.Duration
	StageResults   map[StageName]StageResult
	// Stages lists the stages that ran, in order.
	Stages []StageName
	// Pages maps a page kind to the number of pages rendered.
	Pages      map[string]int
	AssetBytes int64
	Err        error
	Outcome    BuildOutcome
}

func newReport(id string) *Report {
	return &Report{
		BuildID:        id,
		Start:          time.Now(),
		StageDurations: make(map[StageName]time.Duration),
		StageResults:   make(map[StageName]StageResult),
		Pages:          make(map[string]int),
	}
}

// RecordStageResult updates the report and forwards the result to the recorder.
func (r *Report) RecordStageResult(stage StageName, res StageResult, d time.Duration, recorder metrics.Recorder) {
	r.Stages = append(r.Stages, stage)
	r.StageResults[stage] = res
	r.StageDurations[stage] = d
	recorder.ObserveStageDuration(string(stage), d)
	switch res {
	case StageResultSuccess:
		recorder.IncStageResult(string(stage), metrics.ResultSuccess)
	case StageResultFatal:
		recorder.IncStageResult(string(stage), metrics.ResultFatal)
	case StageResultCanceled:
		recorder.IncStageResult(string(stage), metrics.ResultCanceled)
	case StageResultSkipped:
		recorder.IncStageResult(string(stage), metrics.ResultSkipped)
	}
}

// Finish sets the end time and derives the outcome from err.
func (r *Report) Finish(err error) {
	r.End = time.Now()
	r.Err = err
	var se *StageError
	switch {
	case err == nil:
		r.Outcome = OutcomeSuccess
	case errors.As(err, &se) && se.Kind == StageErrorCanceled:
		r.Outcome = OutcomeCanceled
	default:
		r.Outcome = OutcomeFailed
	}
}

// TotalPages returns the number of pages rendered across all kinds.
func (r *Report) TotalPages() int {
	n := 0
	for _, c := range r.Pages {
		n += c
	}
	return n
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	dur := r.End.Sub(r.Start)
	return fmt.Sprintf("build=%s duration=%s stages=%d pages=%d asset_bytes=%d outcome=%s",
		r.BuildID, dur.Truncate(time.Millisecond), len(r.Stages), r.TotalPages(), r.AssetBytes, r.Outcome)
}
