package advisory

import (
	"fmt"

	apperrors "github.com/yanqian/weather-advisor/pkg/errors"
)

// ParseTone validates a tone flag value.
func ParseTone(raw string) (Tone, error) {
	switch t := Tone(normalizeChoice(raw)); t {
	case ToneFriendly, ToneNeutral, ToneFormal:
		return t, nil
	default:
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("tone must be one of friendly, neutral, formal (got %q)", raw), nil)
	}
}

// ParseDetail validates a detail flag value.
func ParseDetail(raw string) (Detail, error) {
	switch d := Detail(normalizeChoice(raw)); d {
	case DetailShort, DetailMedium:
		return d, nil
	default:
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("detail must be one of short, medium (got %q)", raw), nil)
	}
}

func (t Tone) instruction() string {
	switch t {
	case ToneNeutral:
		return "You are a weather assistant. Rewrite the advisory in a clear, plain and neutral voice."
	case ToneFormal:
		return "You are a professional meteorological advisor. Rewrite the advisory in a polite, formal register suitable for a public notice."
	default:
		return "You are a cheerful weather buddy. Rewrite the advisory in a warm, casual voice, like a friend texting advice."
	}
}

func (d Detail) instruction() string {
	if d == DetailMedium {
		return "Write at most two sentences."
	}
	return "Write exactly one sentence."
}
