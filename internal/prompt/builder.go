// Package prompt builds the generation prompt for a quiz request.
package prompt

import (
	"fmt"
	"strings"

	"quiz-forge/internal/domain"
)

const jsonInstruction = `You are a JSON generator. Your response must ONLY contain a valid JSON object, nothing else. No explanations, no markdown, no code fences, no additional text.
ONLY return a JSON object in this exact format:`

const trueFalseSchema = `{
  "questions": [
    {"question": "Sample true/false statement?"}
  ]
}`

const multipleChoiceSchema = `{
  "questions": [
    {
      "question": "Sample multiple choice question?",
      "options": {
        "a": "Option 1",
        "b": "Option 2",
        "c": "Option 3",
        "d": "Option 4"
      }
    }
  ]
}`

const fillBlankSchema = `{
  "questions": [
    {"question": "Sample fill-in-the-blank sentence with _____ as the blank."}
  ]
}`

// Build renders the prompt for req. It is pure: the same request always yields the same prompt.
// Build does not truncate; domain.NewQuizRequest already bounds the source length.
func Build(req domain.QuizRequest) (string, error) {
	schema, err := SchemaExample(req.Mode)
	if err != nil {
		return "", err
	}
	kind, err := KindName(req.Mode)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(jsonInstruction) + len(schema) + len(req.SourceText) + 128)
	b.WriteString(jsonInstruction)
	b.WriteString("\n")
	b.WriteString(schema)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Generate exactly %d %s questions about this content:\n", req.QuestionCount, kind)
	b.WriteString(req.SourceText)
	return b.String(), nil
}

// SchemaExample returns the literal one-question skeleton for mode.
func SchemaExample(mode domain.DifficultyMode) (string, error) {
	switch mode {
	case domain.ModeTrueFalse:
		return trueFalseSchema, nil
	case domain.ModeMultipleChoice:
		return multipleChoiceSchema, nil
	case domain.ModeFillBlank:
		return fillBlankSchema, nil
	default:
		return "", domain.NewInvalidInputError(fmt.Sprintf("no prompt schema for mode %s", mode))
	}
}

// KindName is the question kind named in the count instruction.
func KindName(mode domain.DifficultyMode) (string, error) {
	switch mode {
	case domain.ModeTrueFalse:
		return "True/False", nil
	case domain.ModeMultipleChoice:
		return "multiple choice", nil
	case domain.ModeFillBlank:
		return "fill-in-the-blank", nil
	default:
		return "", domain.NewInvalidInputError(fmt.Sprintf("no question kind for mode %s", mode))
	}
}
