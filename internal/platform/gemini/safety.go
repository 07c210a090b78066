package gemini

import (
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// harmCategories are the categories every safety policy covers.
var harmCategories = []genai.HarmCategory{
	genai.HarmCategoryHarassment,
	genai.HarmCategoryHateSpeech,
	genai.HarmCategorySexuallyExplicit,
	genai.HarmCategoryDangerousContent,
}

// SafetySettings applies threshold to every harm category. An empty
// threshold returns nil, which leaves the upstream defaults in place.
func SafetySettings(threshold genai.HarmBlockThreshold) []SafetySetting {
	if threshold == "" {
		return nil
	}
	settings := make([]SafetySetting, 0, len(harmCategories))
	for _, category := range harmCategories {
		settings = append(settings, SafetySetting{Category: category, Threshold: threshold})
	}
	return settings
}

// DefaultSafetySettings blocks only high-probability harm in every category.
func DefaultSafetySettings() []SafetySetting {
	return SafetySettings(genai.HarmBlockThresholdBlockOnlyHigh)
}

// ParseThreshold validates a configured threshold name.
func ParseThreshold(name string) (genai.HarmBlockThreshold, error) {
	switch t := genai.HarmBlockThreshold(strings.ToUpper(strings.TrimSpace(name))); t {
	case "":
		return "", nil
	case genai.HarmBlockThresholdBlockNone,
		genai.HarmBlockThresholdBlockOnlyHigh,
		genai.HarmBlockThresholdBlockMediumAndAbove,
		genai.HarmBlockThresholdBlockLowAndAbove,
		genai.HarmBlockThresholdOff:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown safety threshold %q", ErrInvalidClientConfig, name)
	}
}
