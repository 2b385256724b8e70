package engine

// GazeAlertSeconds is how long gaze must stay continuously off-screen before
// the resolver escalates to a proctor alert.
const GazeAlertSeconds = 4.0

// Resolve maps the per-frame signals to exactly one state, first match wins:
//
//  1. ProctorAlert when the face count is wrong or gaze has been away for
//     the alert threshold.
//  2. Confused when the indicator majority fired.
//  3. Focused otherwise.
//
// Total over all inputs; callers before calibration pass confused=false and
// still get a defined state from face count and gaze alone.
func Resolve(faceCount int, gazeAwaySeconds float64, confused bool) State {
	if faceCount != 1 || gazeAwaySeconds >= GazeAlertSeconds {
		return ProctorAlert
	}
	if confused {
		return Confused
	}
	return Focused
}
