package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"founder-match/internal/config"
	"founder-match/internal/domain/directory"

	"google.golang.org/genai"
)

type GeminiOracle struct {
	client *genai.Client
	logger *log.Logger

	model          string
	maxRetries     int
	baseDelay      time.Duration
	maxDelay       time.Duration
	requestTimeout time.Duration
}

func NewGeminiOracle(ctx context.Context, cfg config.OracleConfig, logger *log.Logger) (*GeminiOracle, error) {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = log.Default()
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &GeminiOracle{
		client:         client,
		logger:         logger,
		model:          cfg.Model,
		maxRetries:     maxRetries,
		baseDelay:      time.Second,
		maxDelay:       30 * time.Second,
		requestTimeout: timeout,
	}, nil
}

func (o *GeminiOracle) Score(ctx context.Context, job directory.Job, candidate directory.User) (Result, error) {
	prompt := buildScoringPrompt(job, candidate)

	timeoutCtx, cancel := context.WithTimeout(ctx, o.requestTimeout)
	defer cancel()

	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.5)),
	}

	var lastErr error
	for attempt := 0; attempt <= o.maxRetries; attempt++ {
		if attempt > 0 {
			delay := o.backoff(attempt)
			o.logger.Printf("[Oracle] retry %d/%d after %v", attempt, o.maxRetries, delay)
			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, timeoutCtx.Err())
			}
		}

		resp, err := o.client.Models.GenerateContent(timeoutCtx, o.model, genai.Text(prompt), genCfg)
		if err != nil {
			lastErr = err
			continue
		}

		res, err := parseScoreResponse(resp.Text())
		if err != nil {
			lastErr = err
			continue
		}
		return res, nil
	}

	return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

func (o *GeminiOracle) backoff(attempt int) time.Duration {
	d := time.Duration(float64(o.baseDelay) * math.Pow(2, float64(attempt-1)))
	if d > o.maxDelay {
		return o.maxDelay
	}
	return d
}

func buildScoringPrompt(job directory.Job, candidate directory.User) string {
	var b strings.Builder

	b.WriteString("I need to calculate a match score between a job posting and a candidate.\n\n")

	b.WriteString("JOB POSTING:\n")
	fmt.Fprintf(&b, "Title: %s\n", job.Title)
	fmt.Fprintf(&b, "Description: %s\n", job.Description)
	fmt.Fprintf(&b, "Company Stage: %s\n", job.CompanyStage)
	fmt.Fprintf(&b, "Required Skills: %s\n", strings.Join(job.Skills, ", "))
	fmt.Fprintf(&b, "Industry: %s\n", strings.Join(job.Industry, ", "))
	fmt.Fprintf(&b, "Remote: %s\n\n", yesNo(job.Remote))

	b.WriteString("CANDIDATE:\n")
	fmt.Fprintf(&b, "Skills: %s\n", strings.Join(candidate.Skills, ", "))
	fmt.Fprintf(&b, "Business Expertise: %s\n", strings.Join(candidate.BusinessExpertise, ", "))
	fmt.Fprintf(&b, "Professional History: %s\n", mustJSON(candidate.ProfessionalHistory))
	fmt.Fprintf(&b, "Education: %s\n", mustJSON(candidate.Education))
	fmt.Fprintf(&b, "Achievements: %s\n", strings.Join(candidate.Achievements, ", "))
	fmt.Fprintf(&b, "Interests: %s\n\n", strings.Join(candidate.Interests, ", "))

	b.WriteString("Based on the above data, please:\n")
	b.WriteString("1. Calculate a match score between 0 and 100, where 100 is a perfect match\n")
	b.WriteString("2. Provide a brief explanation for the score (maximum 150 words)\n")
	b.WriteString(`3. Return ONLY a JSON object with two fields: "score" (number) and "reason" (string)`)

	return b.String()
}

type scorePayload struct {
	Score  json.Number `json:"score"`
	Reason string      `json:"reason"`
}

func parseScoreResponse(text string) (Result, error) {
	raw, ok := extractJSON(text)
	if !ok {
		return Result{}, fmt.Errorf("no JSON object in oracle reply")
	}

	var p scorePayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Result{}, fmt.Errorf("malformed oracle reply: %w", err)
	}

	score, err := p.Score.Float64()
	if err != nil {
		return Result{}, fmt.Errorf("non-numeric score in oracle reply: %w", err)
	}

	reason := strings.TrimSpace(p.Reason)
	if reason == "" {
		reason = "No reason provided"
	}

	return Result{Score: clampScore(int(math.Round(score))), Rationale: reason}, nil
}

// extractJSON pulls the outermost {...} block out of a model reply that may
// wrap the JSON in prose or markdown fences.
func extractJSON(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}
