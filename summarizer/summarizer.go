// Package summarizer condenses a lecture transcript into structured
// Markdown notes. Short transcripts go through one completion call; long
// ones are split into overlapping word windows, summarized independently,
// then unified by a single merge call. The overlap deliberately duplicates
// text across a cut so a sentence or concept straddling the boundary is
// seen whole by at least one chunk; the merge call, never the splitter,
// is responsible for dropping the resulting repetition.
package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

const (
	// ChunkWords is the window width for long transcripts, OverlapWords
	// the tail of each window repeated at the start of the next.
	ChunkWords   = 8000
	OverlapWords = 500

	// SingleCallMaxWords is the largest transcript summarized in one call.
	SingleCallMaxWords = 10000
)

const systemPrompt = `You are an expert note-taker converting a raw lecture transcript into clean, structured study notes.

Follow these rules exactly:
- Organize content under clear Markdown headings (##, ###) that mirror the lecture's logical flow.
- Write definitions using the pattern: **Definition:** <term> — <concise explanation>
- Convert ALL mathematical expressions to LaTeX: use $...$ for inline math and $$...$$ for display equations.
- Use bullet points for key ideas, kept concise — capture the concept, not the lecturer's wording.
- Include important examples but only if they illuminate a concept; skip trivial or repetitive ones.
- Remove filler words, digressions, repeated explanations, and off-topic remarks entirely.
- Preserve the logical ordering of topics as they were introduced.
- Output clean Markdown only. No preamble, no "Here are your notes:", no explanation.
- Target roughly 20-30% of the original transcript length.`

const mergeSystemPrompt = `You are merging several partial lecture note summaries into a single coherent set of notes.

Follow these rules:
- Merge all sections into one unified document with consistent Markdown headings.
- Remove any duplicate content — keep the clearest version of each concept.
- Ensure logical flow matches the original lecture order (earlier chunks come first).
- Maintain all LaTeX math expressions, bold definitions, and bullet formatting.
- Output clean Markdown only. No preamble or explanation.`

// Completer is a single-turn chat completion backend: no streaming, no
// conversation state.
type Completer interface {
	Complete(ctx context.Context, system, user, model string) (string, error)
}

// Span is one chunk's word range, [Start, End), over the split transcript.
type Span struct {
	Start int
	End   int
}

// PlanSpans computes overlapping word windows over a transcript of
// totalWords. Span i+1 starts OverlapWords before span i ends; the final
// span always ends at totalWords.
func PlanSpans(totalWords int) []Span {
	var spans []Span
	start := 0
	for start < totalWords {
		end := start + ChunkWords
		if end > totalWords {
			end = totalWords
		}
		spans = append(spans, Span{Start: start, End: end})
		if end >= totalWords {
			break
		}
		start = end - OverlapWords
	}
	return spans
}

type Summarizer struct {
	Completer Completer
	Model     string
	Log       zerolog.Logger
}

// Summarize produces the structured Markdown notes for a transcript.
func (s *Summarizer) Summarize(ctx context.Context, transcript, title, course string) (string, error) {
	header := "Lecture: " + title
	if course != "" {
		header += "\nCourse: " + course
	}

	words := strings.Fields(transcript)

	if len(words) <= SingleCallMaxWords {
		return s.complete(ctx, systemPrompt, header+"\n\n---\n\n"+transcript)
	}

	spans := PlanSpans(len(words))
	s.Log.Info().Int("words", len(words)).Int("chunks", len(spans)).Msg("transcript too long for one pass, summarizing in chunks")

	partials := make([]string, 0, len(spans))
	for i, span := range spans {
		chunk := strings.Join(words[span.Start:span.End], " ")
		user := fmt.Sprintf("%s\n(Part %d of %d)\n\n---\n\n%s", header, i+1, len(spans), chunk)
		s.Log.Info().Int("chunk", i+1).Int("of", len(spans)).Msg("summarizing chunk")
		partial, err := s.complete(ctx, systemPrompt, user)
		if err != nil {
			return "", fmt.Errorf("summarizing chunk %d/%d: %w", i+1, len(spans), err)
		}
		partials = append(partials, partial)
	}

	s.Log.Info().Msg("merging chunk summaries into final notes")
	labeled := make([]string, len(partials))
	for i, p := range partials {
		labeled[i] = fmt.Sprintf("## Chunk %d\n\n%s", i+1, p)
	}
	mergeUser := header + "\n\n---\n\n" + strings.Join(labeled, "\n\n---\n\n")

	merged, err := s.complete(ctx, mergeSystemPrompt, mergeUser)
	if err != nil {
		return "", fmt.Errorf("merging summaries: %w", err)
	}
	return merged, nil
}

func (s *Summarizer) complete(ctx context.Context, system, user string) (string, error) {
	out, err := s.Completer.Complete(ctx, system, user, s.Model)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
