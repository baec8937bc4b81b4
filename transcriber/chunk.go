package transcriber

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// ChunkPlan describes how an oversized audio file is cut for a
// size-limited backend: equal-duration contiguous segments, the last one
// absorbing the rounding remainder. Segments partition the source exactly,
// with no gap and no overlap.
type ChunkPlan struct {
	Count    int
	ChunkDur time.Duration
	Total    time.Duration
}

// Span is one segment's time range, [Start, End).
type Span struct {
	Start time.Duration
	End   time.Duration
}

// PlanChunks computes the plan for a file of the given size and duration.
// The chunk count is floor(sizeMB/maxChunkMB)+1, so the result always has
// at least one chunk and every chunk stays under the ceiling.
func PlanChunks(sizeBytes int64, maxChunkMB float64, total time.Duration) ChunkPlan {
	sizeMB := float64(sizeBytes) / (1024 * 1024)
	count := int(sizeMB/maxChunkMB) + 1
	return ChunkPlan{
		Count:    count,
		ChunkDur: total / time.Duration(count),
		Total:    total,
	}
}

// Spans expands the plan into ordered segment ranges.
func (p ChunkPlan) Spans() []Span {
	spans := make([]Span, p.Count)
	for i := 0; i < p.Count; i++ {
		start := time.Duration(i) * p.ChunkDur
		end := start + p.ChunkDur
		if i == p.Count-1 {
			end = p.Total
		}
		spans[i] = Span{Start: start, End: end}
	}
	return spans
}

// probeDuration reads the total duration of an audio file via ffprobe.
func probeDuration(ctx context.Context, path string) (time.Duration, error) {
	out, err := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	).Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: unexpected output %q", path, out)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// cutSegment decodes and re-encodes [start, start+dur) of src into dst.
// Re-encoding keeps segment boundaries exact; stream copy would snap them
// to keyframes.
func cutSegment(ctx context.Context, src, dst string, start, dur time.Duration) error {
	out, err := exec.CommandContext(ctx, "ffmpeg",
		"-v", "error",
		"-i", src,
		"-ss", formatSeconds(start),
		"-t", formatSeconds(dur),
		"-y",
		dst,
	).CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg segment %s: %w\n%s", dst, err, out)
	}
	return nil
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}
