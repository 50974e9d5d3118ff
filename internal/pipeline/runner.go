package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/tarotbuild/internal/logfields"
)

// RunStages executes stages in order, recording timing and stopping on the first error.
// Files written by completed stages stay on disk when a later stage fails.
func RunStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := NewCanceledStageError(st.Name, ctx.Err())
			bs.Report.RecordStageResult(st.Name, StageResultCanceled, 0, bs.Recorder)
			return se
		default:
		}

		bs.Log.Debug("Stage started", logfields.Stage(string(st.Name)))
		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)

		if errors.Is(err, ErrStageSkipped) {
			bs.Report.RecordStageResult(st.Name, StageResultSkipped, dur, bs.Recorder)
			bs.Log.Info("Stage skipped", logfields.Stage(string(st.Name)))
			continue
		}
		if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			bs.Report.RecordStageResult(st.Name, StageResultCanceled, dur, bs.Recorder)
			return NewCanceledStageError(st.Name, err)
		}
		if err != nil {
			bs.Report.RecordStageResult(st.Name, StageResultFatal, dur, bs.Recorder)
			bs.Log.Error("Stage failed",
				logfields.Stage(string(st.Name)),
				logfields.DurationMS(float64(dur.Milliseconds())),
				logfields.Error(err))
			return NewFatalStageError(st.Name, err)
		}

		bs.Report.RecordStageResult(st.Name, StageResultSuccess, dur, bs.Recorder)
		bs.Log.Info("Stage complete",
			logfields.Stage(string(st.Name)),
			logfields.DurationMS(float64(dur.Milliseconds())))
	}
	return nil
}

func logger(id string) *slog.Logger {
	return slog.Default().With(logfields.BuildID(id))
}
