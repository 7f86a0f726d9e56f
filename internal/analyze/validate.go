package analyze

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Field-level defaults applied when the model omits a value.
const (
	defaultMatchScore    = 5.0
	defaultMatchLevel    = "Moderate Match"
	defaultActionableTip = "Review the job requirements carefully"

	defaultGapSkill      = "Unknown"
	defaultGapImportance = "medium"
	defaultGapSuggestion = "Consider learning this skill"
)

// validate coerces an untyped payload into a complete AnalysisResult. It is
// total: missing or mistyped fields are defaulted one by one, and the score is
// clamped to [0, 10] even when the model returned a valid number out of range.
// Only a skill-gap entry that cannot be decoded at all degrades the whole call
// to the Default Result.
func validate(data map[string]any) AnalysisResult {
	result := AnalysisResult{
		MatchScore:     defaultMatchScore,
		MatchLevel:     defaultMatchLevel,
		SkillsMatched:  []string{},
		SkillsGaps:     []SkillGap{},
		StrengthsFound: []string{},
		ActionableTip:  defaultActionableTip,
	}

	if score, ok := coerceFloat(data["match_score"]); ok {
		result.MatchScore = score
	}
	result.MatchScore = math.Max(0.0, math.Min(10.0, result.MatchScore))

	if v, ok := data["match_level"]; ok {
		result.MatchLevel = coerceString(v)
	}

	result.SkillsMatched = coerceStringList(data["skills_matched"])
	result.StrengthsFound = coerceStringList(data["strengths_found"])

	if v, ok := data["actionable_tip"]; ok {
		result.ActionableTip = coerceString(v)
	}

	gaps, err := decodeSkillGaps(data["skills_gaps"])
	if err != nil {
		return DefaultResult()
	}
	result.SkillsGaps = gaps

	return result
}

// decodeSkillGaps converts the raw skills_gaps list. Entries that are not
// objects are skipped silently; object entries are decoded weakly over a
// defaults-prefilled gap so that omitted fields keep their defaults.
func decodeSkillGaps(v any) ([]SkillGap, error) {
	gaps := []SkillGap{}

	list, ok := v.([]any)
	if !ok {
		return gaps, nil
	}

	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}

		gap := SkillGap{
			Skill:      defaultGapSkill,
			Importance: defaultGapImportance,
			Suggestion: defaultGapSuggestion,
		}

		cfg := &mapstructure.DecoderConfig{
			Result:           &gap,
			TagName:          "json",
			WeaklyTypedInput: true,
		}
		decoder, err := mapstructure.NewDecoder(cfg)
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(entry); err != nil {
			return nil, fmt.Errorf("decode skill gap: %w", err)
		}

		gaps = append(gaps, gap)
	}

	return gaps, nil
}

func coerceFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}

func coerceStringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return []string{}
	}

	result := make([]string, 0, len(list))
	for _, item := range list {
		result = append(result, coerceString(item))
	}

	return result
}
