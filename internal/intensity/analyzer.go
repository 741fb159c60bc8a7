// Package intensity provides loudness analysis over decoded PCM audio and
// threshold-based window selection. It contains the pure core of loudcut:
// chunked RMS computation and fixed-length window selection.
package intensity

import (
	"log/slog"
	"math"
)

// ChunkDurationMs is the fixed analysis chunk length in milliseconds.
// Every intensity value covers exactly one chunk, so index i of the
// output corresponds to time i*100ms in the decoded stream.
const ChunkDurationMs = 100

// Analyzer computes per-chunk RMS intensity values from interleaved
// signed 16-bit PCM samples.
type Analyzer struct {
	// SampleRate is the decode sample rate in Hz.
	SampleRate int
	// Channels is the number of interleaved channels in the stream.
	Channels int

	logger *slog.Logger
}

// NewAnalyzer creates an Analyzer for the given decode format.
func NewAnalyzer(sampleRate, channels int, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		SampleRate: sampleRate,
		Channels:   channels,
		logger:     logger,
	}
}

// samplesPerChunk returns the number of interleaved samples covering one
// 100 ms chunk. Channel layout does not matter for RMS; all interleaved
// samples of a chunk contribute equally.
func (a *Analyzer) samplesPerChunk() int {
	return a.SampleRate * a.Channels * ChunkDurationMs / 1000
}

// Analyze partitions samples into consecutive 100 ms chunks and returns
// one RMS value per valid chunk, in time order. The final chunk may be
// partial and is still analyzed. Empty chunks and chunks with invalid
// results (negative mean square, NaN root) produce no value at all: the
// output sequence is filtered, not zero-filled, and downstream windowing
// operates over the filtered positions.
func (a *Analyzer) Analyze(samples []int16) []float64 {
	chunkSize := a.samplesPerChunk()
	if chunkSize <= 0 {
		return nil
	}

	intensities := make([]float64, 0, (len(samples)+chunkSize-1)/chunkSize)

	for start := 0; start < len(samples); start += chunkSize {
		end := start + chunkSize
		if end > len(samples) {
			end = len(samples)
		}

		rms, ok := a.chunkRMS(samples[start:end], start/chunkSize)
		if !ok {
			continue
		}
		intensities = append(intensities, rms)
	}

	return intensities
}

// chunkRMS computes the root-mean-square of a single chunk.
// The boolean result is false when the chunk must be omitted.
func (a *Analyzer) chunkRMS(chunk []int16, index int) (float64, bool) {
	if len(chunk) == 0 {
		return 0, false
	}

	var sumSquares float64
	for _, s := range chunk {
		v := float64(s)
		sumSquares += v * v
	}
	mean := sumSquares / float64(len(chunk))

	// Cannot occur for real samples, but the reference guards it and so do we.
	if mean < 0 {
		a.logger.Warn("invalid mean square, dropping chunk",
			slog.Int("chunk", index),
			slog.Float64("mean", mean),
		)
		return 0, false
	}

	rms := math.Sqrt(mean)
	if math.IsNaN(rms) {
		return 0, false
	}

	return rms, true
}
