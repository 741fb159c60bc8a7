package intensity

// ChunksPerSecond is the number of intensity entries covering one second
// of audio at the fixed 100 ms chunk rate.
const ChunksPerSecond = 1000 / ChunkDurationMs

// Window is a selected segment of the source timeline.
type Window struct {
	// StartSec is the window start offset in seconds.
	StartSec float64
	// DurationSec is the window length in seconds.
	DurationSec float64
}

// SelectWindows divides the intensity sequence into consecutive groups of
// clipDurationSec*10 entries and returns a window for every group whose
// arithmetic mean is strictly greater than threshold. The trailing group
// may hold fewer entries; its mean is taken over whatever remains.
//
// Window starts advance by clipDurationSec per group regardless of
// emission, so the result is ordered and non-overlapping by construction.
// The function is pure: no validation, no side effects. A negative
// threshold is accepted literally.
func SelectWindows(intensities []float64, threshold float64, clipDurationSec int) []Window {
	groupSize := clipDurationSec * ChunksPerSecond
	if groupSize <= 0 {
		return nil
	}

	var windows []Window
	startSec := 0.0

	for i := 0; i < len(intensities); i += groupSize {
		end := i + groupSize
		if end > len(intensities) {
			end = len(intensities)
		}
		group := intensities[i:end]

		// The loop condition guarantees at least one entry per group; the
		// guard keeps an empty trailing group from selecting anything.
		if len(group) > 0 && mean(group) > threshold {
			windows = append(windows, Window{
				StartSec:    startSec,
				DurationSec: float64(clipDurationSec),
			})
		}

		startSec += float64(clipDurationSec)
	}

	return windows
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
