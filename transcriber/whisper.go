package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// MaxChunkMB is the per-call payload ceiling for the remote API, with
// headroom under its hard 25 MB limit.
const MaxChunkMB = 24

// WhisperAPI transcribes via the OpenAI Whisper endpoint. Files over the
// payload ceiling are cut into equal-duration segments, transcribed in
// order and concatenated.
type WhisperAPI struct {
	apiKey string
	apiURL string
	model  string
	client *TracedClient
	log    zerolog.Logger

	// Replaceable in tests so chunk orchestration runs without ffmpeg
	// or the network.
	single func(ctx context.Context, path string) (string, error)
	probe  func(ctx context.Context, path string) (time.Duration, error)
	cut    func(ctx context.Context, src, dst string, start, dur time.Duration) error
}

func NewWhisperAPI(apiKey string, logger zerolog.Logger) *WhisperAPI {
	w := &WhisperAPI{
		apiKey: apiKey,
		apiURL: "https://api.openai.com/v1/audio/transcriptions",
		model:  "whisper-1",
		client: NewTracedClient(),
		log:    logger,
	}
	w.single = w.transcribeFile
	w.probe = probeDuration
	w.cut = cutSegment
	return w
}

func (w *WhisperAPI) Name() string { return "whisper-api" }

func (w *WhisperAPI) Transcribe(ctx context.Context, audioPath string) (string, error) {
	info, err := os.Stat(audioPath)
	if err != nil {
		return "", fmt.Errorf("audio file: %w", err)
	}

	if float64(info.Size())/(1024*1024) <= MaxChunkMB {
		text, err := w.single(ctx, audioPath)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(text), nil
	}

	return w.transcribeChunked(ctx, audioPath, info.Size())
}

// transcribeChunked cuts the file per the chunk plan, transcribes each
// segment in increasing order and joins the parts with single spaces. The
// temp directory is removed even when a segment call fails; a failed
// segment aborts the whole operation with no partial result.
func (w *WhisperAPI) transcribeChunked(ctx context.Context, audioPath string, size int64) (string, error) {
	total, err := w.probe(ctx, audioPath)
	if err != nil {
		return "", err
	}
	plan := PlanChunks(size, MaxChunkMB, total)
	w.log.Info().
		Int("chunks", plan.Count).
		Dur("chunk_dur", plan.ChunkDur).
		Dur("total", plan.Total).
		Msg("file over API limit, transcribing in chunks")

	tmpDir, err := os.MkdirTemp("", "lecture2obs_")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmpDir)

	ext := filepath.Ext(audioPath)
	parts := make([]string, 0, plan.Count)
	for i, span := range plan.Spans() {
		chunkPath := filepath.Join(tmpDir, fmt.Sprintf("chunk_%03d%s", i, ext))
		if err := w.cut(ctx, audioPath, chunkPath, span.Start, span.End-span.Start); err != nil {
			return "", err
		}
		w.log.Info().Int("chunk", i+1).Int("of", plan.Count).Msg("transcribing chunk")
		text, err := w.single(ctx, chunkPath)
		if err != nil {
			return "", fmt.Errorf("chunk %d/%d: %w", i+1, plan.Count, err)
		}
		parts = append(parts, strings.TrimSpace(text))
	}

	return strings.Join(parts, " "), nil
}

func (w *WhisperAPI) transcribeFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening audio file: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", err
	}
	writer.WriteField("model", w.model)
	writer.WriteField("response_format", "text")
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, "POST", w.apiURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+w.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling whisper API: %w", err)
	}
	w.log.Info().
		Int("status", resp.StatusCode).
		Dur("dns", resp.Metrics.DNS).
		Dur("tls", resp.Metrics.TLS).
		Dur("ttfb", resp.Metrics.TTFB).
		Dur("download", resp.Metrics.Download).
		Dur("total", resp.Metrics.Total).
		Msg("whisper API request")
	if resp.StatusCode == http.StatusUnauthorized {
		return "", fmt.Errorf("invalid OpenAI API key, check OPENAI_API_KEY")
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("whisper API error %d: %s", resp.StatusCode, apiErrorMessage(resp.Body))
	}

	return string(resp.Body), nil
}

// apiErrorMessage digs the human-readable message out of an API error
// payload, falling back to the raw body.
func apiErrorMessage(body []byte) string {
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	return string(body)
}
