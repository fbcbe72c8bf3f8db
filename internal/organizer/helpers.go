package organizer

import (
	"docshelf/internal/config"
	"docshelf/internal/normalize"
)

func normalizerFromConfig(cfg *config.Config) *normalize.Normalizer {
	if len(cfg.Matching.GenericWords) > 0 {
		return normalize.New(normalize.WithGenericWords(cfg.Matching.GenericWords))
	}
	return normalize.New()
}
