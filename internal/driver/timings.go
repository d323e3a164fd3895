package driver

import (
	"encoding/json"
	"fmt"

	"cdl/internal/diag"
	"cdl/internal/observ"
	"cdl/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// AppendTimingDiagnostic adds the timer report to bag as an info diagnostic
// whose note carries the JSON payload. It bypasses the bag limit.
func AppendTimingDiagnostic(bag *diag.Bag, kind string, report observ.Report) {
	if bag == nil {
		return
	}
	if kind == "" {
		kind = "pipeline"
	}
	data, err := json.Marshal(timingPayload{Kind: kind, TotalMS: report.TotalMS, Phases: report.Phases})
	if err != nil {
		return
	}
	entry := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  fmt.Sprintf("timings (%s): total %.2f ms", kind, report.TotalMS),
		Notes:    []diag.Note{{Span: source.Span{}, Msg: string(data)}},
	}
	if bag.Add(entry) {
		return
	}
	overflow := diag.NewBag(1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
