package main

import (
	"fmt"
	"io"
	"time"

	"cdl/internal/buildpipeline"
)

func printStageTimings(out io.Writer, timings buildpipeline.Timings) error {
	if out == nil {
		return nil
	}
	stages := []struct {
		stage buildpipeline.Stage
		label string
	}{
		{buildpipeline.StageLoad, "loaded"},
		{buildpipeline.StageParse, "parsed"},
		{buildpipeline.StageCheck, "checked"},
		{buildpipeline.StageEmit, "emitted"},
		{buildpipeline.StageWrite, "written"},
	}
	for _, st := range stages {
		if !timings.Has(st.stage) {
			continue
		}
		if _, err := fmt.Fprintf(out, "%s %.1f ms\n", st.label, toMillis(timings.Duration(st.stage))); err != nil {
			return err
		}
	}
	return nil
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
