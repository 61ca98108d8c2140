package pass

import (
	"github.com/ccu1tn/onnc/internal/ir"
	"github.com/ccu1tn/onnc/internal/stats"
)

// CalibrationPassID is the identity token of the calibration-table pass.
const CalibrationPassID = "update-calibration-table"

// defaultThreshold is the quantization threshold written for operators the
// tuning flow has not visited yet.
const defaultThreshold = int64(128)

// NewCalibrationPass builds the pass that keeps a backend calibration table
// in sync with the compute graph: for each operator of a handled kind it
// ensures the table has a group keyed by the operator's first output name,
// recording the kind and a quantization threshold. Thresholds already tuned
// (present in the table) are preserved; only missing entries get the
// default.
//
// The table is an explicit stats.Group owned by the caller, so independent
// compilations can run concurrently with separate tables.
func NewCalibrationPass(table *stats.Group, kinds ...ir.OpKind) Pass {
	v := NewVisitor(DefaultSkip)
	for _, kind := range kinds {
		v.Handle(kind, func(op *ir.Operator) error {
			entry := table.AddGroup(op.Output(0).Name)
			threshold := entry.EntryInt("threshold", defaultThreshold)
			if err := entry.WriteEntry("threshold", threshold); err != nil {
				return err
			}
			return entry.WriteEntry("kind", string(op.Kind()))
		})
	}
	return NewGraphBuildingPass(CalibrationPassID, v)
}
