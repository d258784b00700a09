package processor

import (
	"context"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"codeberg.org/snonux/vocadrill/internal/drill"
)

// PhoneticFetcher looks up IPA transcriptions.
type PhoneticFetcher interface {
	Fetch(ctx context.Context, word string) (string, error)
}

// Translator looks up word meanings.
type Translator interface {
	Translate(ctx context.Context, word string) (string, error)
}

// EnrichStats counts the lookups of one Enrich call.
type EnrichStats struct {
	IPA      int
	Meanings int
	Failed   int
}

// Enrich fills in missing IPA and meanings before the words enter a session.
// Either lookup may be nil. Failed lookups are logged and leave the word as
// it was; only a cancelled context stops the run.
func Enrich(ctx context.Context, words []*drill.Word, ipa PhoneticFetcher, tr Translator, log logrus.FieldLogger) (EnrichStats, error) {
	var stats EnrichStats

	if ipa != nil {
		for _, w := range lo.Filter(words, func(w *drill.Word, _ int) bool { return !w.HasPronunciation() }) {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			pron, err := ipa.Fetch(ctx, w.Text)
			if err != nil || pron == "" {
				stats.Failed++
				log.WithError(err).WithField("word", w.Text).Warn("IPA lookup failed")
				continue
			}
			w.Pronunciation = pron
			stats.IPA++
		}
	}

	if tr != nil {
		for _, w := range lo.Filter(words, func(w *drill.Word, _ int) bool { return w.Meaning == "" }) {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			meaning, err := tr.Translate(ctx, w.Text)
			if err != nil || meaning == "" {
				stats.Failed++
				log.WithError(err).WithField("word", w.Text).Warn("meaning lookup failed")
				continue
			}
			w.Meaning = meaning
			stats.Meanings++
		}
	}

	log.WithFields(logrus.Fields{"ipa": stats.IPA, "meanings": stats.Meanings, "failed": stats.Failed}).Info("word list enriched")
	return stats, nil
}
