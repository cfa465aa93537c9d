package question

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"time"

	"github.com/dstanton/trivianight/internal/dependencies/random"
	"github.com/dstanton/trivianight/internal/model"
)

// DefaultBaseURL is the Open Trivia Database endpoint, requesting a
// single multiple-choice question per round.
const DefaultBaseURL = "https://opentdb.com/api.php?amount=1&type=multiple"

const defaultTimeout = 10 * time.Second

// OpenTDBConfig holds settings for the Open Trivia DB client
type OpenTDBConfig struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultOpenTDBConfig returns sensible defaults
func DefaultOpenTDBConfig() OpenTDBConfig {
	return OpenTDBConfig{
		BaseURL: DefaultBaseURL,
		Timeout: defaultTimeout,
	}
}

// OpenTDB fetches trivia questions from the Open Trivia Database.
type OpenTDB struct {
	client  *http.Client
	baseURL string
	random  random.Random
	logger  *slog.Logger
}

// NewOpenTDB creates an Open Trivia DB provider
func NewOpenTDB(cfg OpenTDBConfig, rnd random.Random, logger *slog.Logger) *OpenTDB {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &OpenTDB{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		random:  rnd,
		logger:  logger.With(slog.String("component", "opentdb")),
	}
}

// Ensure OpenTDB implements the interface
var _ Provider = (*OpenTDB)(nil)

// opentdb JSON envelope: response_code 0 means success
type apiResponse struct {
	ResponseCode int         `json:"response_code"`
	Results      []apiResult `json:"results"`
}

type apiResult struct {
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// FetchQuestion requests one question and shuffles the candidate
// answers so the correct one doesn't always land in the same slot.
func (p *OpenTDB) FetchQuestion(ctx context.Context) (*model.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrQuestionUnavailable, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrQuestionUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", model.ErrQuestionUnavailable, resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrQuestionUnavailable, err)
	}
	if payload.ResponseCode != 0 || len(payload.Results) == 0 {
		return nil, fmt.Errorf("%w: response code %d", model.ErrQuestionUnavailable, payload.ResponseCode)
	}

	result := payload.Results[0]

	// opentdb HTML-encodes its strings; decode server-side so clients
	// see plain text
	correct := html.UnescapeString(result.CorrectAnswer)
	answers := make([]string, 0, len(result.IncorrectAnswers)+1)
	for _, answer := range result.IncorrectAnswers {
		answers = append(answers, html.UnescapeString(answer))
	}
	answers = append(answers, correct)
	p.shuffle(answers)

	p.logger.Debug("question fetched", slog.Int("answers", len(answers)))

	return &model.Question{
		Prompt:        html.UnescapeString(result.Question),
		Answers:       answers,
		CorrectAnswer: correct,
	}, nil
}

// Fisher-Yates via the injected random source
func (p *OpenTDB) shuffle(answers []string) {
	for i := len(answers) - 1; i > 0; i-- {
		j := p.random.Intn(i + 1)
		answers[i], answers[j] = answers[j], answers[i]
	}
}
