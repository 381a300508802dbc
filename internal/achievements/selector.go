// Package achievements provides the key-achievement selector: bullet scoring against job
// signals, algorithmic and LLM-assisted top-K selection, and source matching for provenance.
package achievements

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/prompts"
	"github.com/jonathan/cv-tailor/internal/types"
)

// DefaultTargetCount is the number of key achievements emitted
const DefaultTargetCount = 6

// maxPromptCandidates bounds how many scored bullets are shown to the LLM
const maxPromptCandidates = 25

// selectionSchema is the structured output of the selection call
var selectionSchema = &llm.OutputSchema{
	Name:        "key_achievement_selection",
	Description: "indices of the chosen candidate achievements, optionally lightly reworded",
	Fields: []llm.SchemaField{
		{
			Name:        "selections",
			Type:        llm.FieldObjectList,
			Description: "one entry per chosen achievement, strongest first",
			Required:    true,
			Items: []llm.SchemaField{
				{Name: "index", Type: llm.FieldInteger, Required: true},
				{Name: "text", Type: llm.FieldString, Description: "the achievement as it should appear"},
			},
		},
	},
}

type selectionResponse struct {
	Selections []struct {
		Index int    `json:"index"`
		Text  string `json:"text"`
	} `json:"selections"`
}

// Error represents an LLM selection that could not be traced back to the pool
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("achievement selection: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("achievement selection: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Input is one selection request
type Input struct {
	Pool    []types.PoolBullet
	Job     JobContext
	Title   string
	Company string
	// Target defaults to DefaultTargetCount
	Target int
	// UseLLM asks the LLM to pick and lightly reword; the algorithmic pick is the fallback
	UseLLM bool
	// Focus is extra instruction text, set by ensemble personas
	Focus string
}

// Selection is the selected achievements with their provenance
type Selection struct {
	Sources []types.AchievementSource
	Result  types.SelectionResult
	// Ranked is the scored pool, best first
	Ranked []ScoredBullet
}

// Texts returns the emitted achievement texts in order
func (s *Selection) Texts() []string {
	texts := make([]string, len(s.Sources))
	for i, src := range s.Sources {
		texts[i] = src.BulletText
	}
	return texts
}

// Selector picks key achievements
type Selector struct {
	scorer *Scorer
	client llm.Client
	logger zerolog.Logger
}

// NewSelector creates a selector. client may be nil, which disables LLM selection.
func NewSelector(scorer *Scorer, client llm.Client, logger zerolog.Logger) *Selector {
	return &Selector{
		scorer: scorer,
		client: client,
		logger: logger.With().Str("component", "achievements").Logger(),
	}
}

// Rank sorts scored bullets by total score, best first. Ties keep pool order.
func Rank(scored []ScoredBullet) []ScoredBullet {
	ranked := append([]ScoredBullet(nil), scored...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Breakdown.Total > ranked[j].Breakdown.Total
	})
	return ranked
}

// SelectTopK returns the first k ranked bullets as verbatim sources
func SelectTopK(ranked []ScoredBullet, k int) []types.AchievementSource {
	if k > len(ranked) {
		k = len(ranked)
	}
	sources := make([]types.AchievementSource, 0, k)
	for _, scored := range ranked[:k] {
		sources = append(sources, NewSource(scored.Bullet.Text, scored, 1.0))
	}
	return sources
}

// Select scores the pool and picks the target number of achievements.
// A non-empty pool always yields a non-empty selection.
func (s *Selector) Select(ctx context.Context, in Input) *Selection {
	target := in.Target
	if target <= 0 {
		target = DefaultTargetCount
	}

	ranked := Rank(s.scorer.ScoreAll(in.Pool, in.Job))
	qualifying := 0
	for i := range ranked {
		if ranked[i].Qualifies() {
			qualifying++
		}
	}

	selection := &Selection{
		Ranked: ranked,
		Result: types.SelectionResult{
			TargetCount: target,
			Qualifying:  qualifying,
			NeedsReview: qualifying < target-1,
			Method:      types.SelectionAlgorithmic,
		},
	}
	if len(ranked) == 0 {
		selection.Sources = []types.AchievementSource{}
		return selection
	}

	if in.UseLLM && s.client != nil {
		sources, err := s.selectWithLLM(ctx, in, ranked, target)
		if err == nil {
			selection.Sources = sources
			selection.Result.Method = types.SelectionLLM
		} else {
			s.logger.Warn().Err(err).Int("pool", len(ranked)).Msg("llm selection rejected, using top-k by score")
			selection.Result.LLMError = err.Error()
		}
	}
	if selection.Sources == nil {
		selection.Sources = SelectTopK(ranked, target)
	}
	selection.Result.SelectedCount = len(selection.Sources)
	return selection
}

func (s *Selector) selectWithLLM(ctx context.Context, in Input, ranked []ScoredBullet, target int) ([]types.AchievementSource, error) {
	candidates := ranked
	if len(candidates) > maxPromptCandidates {
		candidates = candidates[:maxPromptCandidates]
	}

	prompt, err := prompts.Render("achievements.json", "select-key-achievements", map[string]string{
		"Title":        in.Title,
		"Company":      in.Company,
		"PainPoints":   bulletList(in.Job.PainPoints),
		"Keywords":     strings.Join(in.Job.Keywords, ", "),
		"PersonaFocus": in.Focus,
		"Candidates":   candidateList(candidates),
		"Target":       strconv.Itoa(target),
	})
	if err != nil {
		return nil, &Error{Message: "failed to render prompt", Cause: err}
	}

	resp, err := s.client.Invoke(ctx, llm.Request{
		Prompt:  prompt,
		System:  prompts.MustGet("achievements.json", "selection-system"),
		Schema:  selectionSchema,
		Purpose: llm.PurposeSimple,
	})
	if err != nil {
		return nil, &Error{Message: "llm call failed", Cause: err}
	}

	var parsed selectionResponse
	if err := llm.Decode(resp, &parsed); err != nil {
		return nil, &Error{Message: "malformed selection", Cause: err}
	}
	if len(parsed.Selections) == 0 {
		return nil, &Error{Message: "llm selected nothing"}
	}

	picked := make(map[int]bool)
	sources := make([]types.AchievementSource, 0, target)
	for _, pick := range parsed.Selections {
		if len(sources) == target {
			break
		}
		if pick.Index < 0 || pick.Index >= len(candidates) {
			return nil, &Error{Message: fmt.Sprintf("index %d out of range", pick.Index)}
		}
		if picked[pick.Index] {
			return nil, &Error{Message: fmt.Sprintf("index %d selected twice", pick.Index)}
		}
		scored := candidates[pick.Index]
		text := strings.TrimSpace(pick.Text)
		if text == "" {
			text = scored.Bullet.Text
		}
		confidence := MatchConfidence(text, scored.Bullet.Text)
		if confidence == 0 {
			return nil, &Error{Message: fmt.Sprintf("text for index %d cannot be traced to its source bullet", pick.Index)}
		}
		picked[pick.Index] = true
		sources = append(sources, NewSource(text, scored, confidence))
	}

	// top up a short pick from the ranked order
	for _, scored := range ranked {
		if len(sources) >= target {
			break
		}
		if containsSource(sources, scored.Bullet.Text) {
			continue
		}
		sources = append(sources, NewSource(scored.Bullet.Text, scored, 1.0))
	}
	return sources, nil
}

func containsSource(sources []types.AchievementSource, sourceBullet string) bool {
	for _, src := range sources {
		if src.SourceBullet == sourceBullet {
			return true
		}
	}
	return false
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return "- (none listed)"
	}
	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("- " + item)
	}
	return sb.String()
}

func candidateList(candidates []ScoredBullet) string {
	var sb strings.Builder
	for i, c := range candidates {
		sb.WriteString(fmt.Sprintf("[%d] (%.1f) %s\n", i, c.Breakdown.Total, c.Bullet.Text))
	}
	return strings.TrimRight(sb.String(), "\n")
}
