package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"quiz-forge/internal/domain"
)

// blankMarker matches the ways backends tend to write a blank: runs of
// underscores, "[blank]", "(blank)" or an ellipsis.
var blankMarker = regexp.MustCompile(`_{2,}|\[\s*blank\s*\]|\(\s*blank\s*\)|\.{3,}|…`)

// ValidateQuiz parses a sanitized candidate against the schema for req.Mode.
// It is all-or-nothing: either every question validates and a Quiz is returned,
// or a MALFORMED_PAYLOAD / SCHEMA_VIOLATION error is. A question count that
// differs from req.QuestionCount is recorded as an advisory, not an error.
func ValidateQuiz(candidate string, req domain.QuizRequest) (*domain.Quiz, error) {
	var doc interface{}
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		return nil, domain.NewMalformedPayloadError(err)
	}

	top, ok := doc.(map[string]interface{})
	if !ok {
		return nil, domain.NewSchemaViolationError("missing questions")
	}
	if _, ok := top["questions"].([]interface{}); !ok {
		return nil, domain.NewSchemaViolationError("missing questions")
	}

	// Decode again keeping raw elements, so option order survives.
	var envelope struct {
		Questions []json.RawMessage `json:"questions"`
	}
	if err := json.Unmarshal([]byte(candidate), &envelope); err != nil {
		return nil, domain.NewMalformedPayloadError(err)
	}
	if len(envelope.Questions) == 0 {
		return nil, domain.NewSchemaViolationError("no questions")
	}

	questions := make([]domain.Question, 0, len(envelope.Questions))
	var advisories []domain.Advisory
	for i, raw := range envelope.Questions {
		q, advisory, err := validateQuestion(i, raw, req.Mode)
		if err != nil {
			return nil, err
		}
		if advisory != nil {
			advisories = append(advisories, *advisory)
		}
		questions = append(questions, q)
	}

	if len(questions) != req.QuestionCount {
		advisories = append(advisories, domain.Advisory{
			Kind:    domain.AdvisoryCountMismatch,
			Index:   -1,
			Message: fmt.Sprintf("requested %d questions, backend returned %d", req.QuestionCount, len(questions)),
		})
	}

	return domain.NewQuiz(req.Mode, questions, req.QuestionCount, advisories), nil
}

func validateQuestion(i int, raw json.RawMessage, mode domain.DifficultyMode) (domain.Question, *domain.Advisory, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return domain.Question{}, nil, domain.NewSchemaViolationError(fmt.Sprintf("question %d is not an object", i))
	}

	var text string
	if rawText, ok := fields["question"]; ok {
		if err := json.Unmarshal(rawText, &text); err != nil {
			return domain.Question{}, nil, domain.NewSchemaViolationError(fmt.Sprintf("question %d text is not a string", i))
		}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Question{}, nil, domain.NewSchemaViolationError(fmt.Sprintf("question %d missing question text", i))
	}

	switch mode {
	case domain.ModeTrueFalse:
		return domain.Question{Text: text}, nil, nil
	case domain.ModeFillBlank:
		var advisory *domain.Advisory
		if !blankMarker.MatchString(text) {
			advisory = &domain.Advisory{
				Kind:    domain.AdvisoryMissingBlankMarker,
				Index:   i,
				Message: fmt.Sprintf("question %d has no recognisable blank marker", i),
			}
		}
		return domain.Question{Text: text}, advisory, nil
	case domain.ModeMultipleChoice:
		rawOptions, ok := fields["options"]
		if !ok || bytes.Equal(bytes.TrimSpace(rawOptions), []byte("null")) {
			return domain.Question{}, nil, domain.NewSchemaViolationError(fmt.Sprintf("question %d missing options", i))
		}
		options, err := decodeOptions(i, rawOptions)
		if err != nil {
			return domain.Question{}, nil, err
		}
		return domain.Question{Text: text, Options: options}, nil, nil
	default:
		return domain.Question{}, nil, domain.NewInternalError(fmt.Sprintf("no question schema for mode %s", mode), nil)
	}
}

// decodeOptions walks the options object token by token to keep document order.
func decodeOptions(i int, raw json.RawMessage) ([]domain.Option, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if delim, ok := tok.(json.Delim); err != nil || !ok || delim != '{' {
		return nil, domain.NewSchemaViolationError(fmt.Sprintf("question %d options must be an object", i))
	}

	var options []domain.Option
	seen := make(map[string]bool)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, domain.NewMalformedPayloadError(err)
		}
		key, _ := keyTok.(string)

		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return nil, domain.NewMalformedPayloadError(err)
		}

		if !isOptionKey(key) {
			return nil, domain.NewSchemaViolationError(fmt.Sprintf("question %d option key %q must be a single letter", i, key))
		}
		if seen[key] {
			return nil, domain.NewSchemaViolationError(fmt.Sprintf("question %d has duplicate option %q", i, key))
		}
		seen[key] = true

		text, ok := value.(string)
		text = strings.TrimSpace(text)
		if !ok || text == "" {
			return nil, domain.NewSchemaViolationError(fmt.Sprintf("question %d option %q is empty", i, key))
		}
		options = append(options, domain.Option{Key: key, Text: text})
	}

	if len(options) < 2 {
		return nil, domain.NewSchemaViolationError(fmt.Sprintf("question %d missing options", i))
	}
	return options, nil
}

func isOptionKey(key string) bool {
	r, size := utf8.DecodeRuneInString(key)
	return size > 0 && size == len(key) && unicode.IsLetter(r)
}
