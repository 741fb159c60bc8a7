package audio

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

// checkFFmpeg skips test if ffmpeg is not available.
func checkFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not found in PATH, skipping test")
	}
}

// createTestWAV creates a sine-wave WAV file with the given duration.
func createTestWAV(t *testing.T, outputPath string, durationSec float64) {
	t.Helper()

	filter := fmt.Sprintf("sine=frequency=440:duration=%.3f", durationSec)
	cmd := exec.Command("ffmpeg", "-y",
		"-f", "lavfi", "-i", filter,
		"-ar", "16000", "-ac", "1",
		outputPath,
	)
	stderr, _ := cmd.CombinedOutput()
	if _, err := os.Stat(outputPath); os.IsNotExist(err) {
		t.Fatalf("failed to create test WAV: %s", string(stderr))
	}
}

func TestDecodeS16LE(t *testing.T) {
	t.Run("decodes interleaved samples", func(t *testing.T) {
		values := []int16{0, 1, -1, 32767, -32768, 12345}
		data := make([]byte, len(values)*2)
		for i, v := range values {
			binary.LittleEndian.PutUint16(data[i*2:], uint16(v))
		}

		samples := DecodeS16LE(data)
		if len(samples) != len(values) {
			t.Fatalf("expected %d samples, got %d", len(values), len(samples))
		}
		for i, want := range values {
			if samples[i] != want {
				t.Errorf("sample %d: got %d, want %d", i, samples[i], want)
			}
		}
	})

	t.Run("ignores trailing odd byte", func(t *testing.T) {
		samples := DecodeS16LE([]byte{0x34, 0x12, 0xff})
		if len(samples) != 1 {
			t.Fatalf("expected 1 sample, got %d", len(samples))
		}
		if samples[0] != 0x1234 {
			t.Errorf("got %#x, want 0x1234", samples[0])
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := DecodeS16LE(nil); len(got) != 0 {
			t.Errorf("expected no samples, got %d", len(got))
		}
	})
}

func TestFFmpegExtractor_ExtractPCM(t *testing.T) {
	checkFFmpeg(t)

	tmpDir := t.TempDir()
	inputPath := filepath.Join(tmpDir, "tone.wav")
	outputPath := filepath.Join(tmpDir, "tone.raw")

	createTestWAV(t, inputPath, 2.0)

	extractor := NewFFmpegExtractor("")
	opts := ExtractOpts{SampleRate: 16000, Channels: 1}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := extractor.ExtractPCM(ctx, inputPath, outputPath, opts); err != nil {
		t.Fatalf("ExtractPCM failed: %v", err)
	}

	samples, err := ReadSamples(outputPath)
	if err != nil {
		t.Fatalf("ReadSamples failed: %v", err)
	}

	// 2 seconds of mono 16 kHz audio, allow some container slack.
	want := 2 * 16000
	if len(samples) < want*9/10 || len(samples) > want*11/10 {
		t.Errorf("unexpected sample count: got %d, want ~%d", len(samples), want)
	}
}

func TestFFmpegExtractor_NonExistentFile(t *testing.T) {
	extractor := NewFFmpegExtractor("")
	err := extractor.ExtractPCM(context.Background(), "/nonexistent/video.mp4", "/tmp/out.raw", DefaultExtractOpts())
	if err == nil {
		t.Error("expected error for non-existent input")
	}
}

func TestNewFFmpegExtractor_DefaultPath(t *testing.T) {
	extractor := NewFFmpegExtractor("")
	if extractor.ffmpegPath != "ffmpeg" {
		t.Errorf("expected default path 'ffmpeg', got '%s'", extractor.ffmpegPath)
	}
}

func TestDefaultExtractOpts(t *testing.T) {
	opts := DefaultExtractOpts()
	if opts.SampleRate != 44100 {
		t.Errorf("SampleRate: got %d, want 44100", opts.SampleRate)
	}
	if opts.Channels != 2 {
		t.Errorf("Channels: got %d, want 2", opts.Channels)
	}
}
