// Package llm turns an OCR transcript into typed, confidence-scored wine
// fields by prompting a language model and validating its untrusted reply.
package llm

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/dmaresco/cellarscan/internal/entity"
)

// Interpreter implements extract.FieldInterpreter. It never surfaces model
// failures: any provider error, malformed reply, or schema violation degrades
// to an empty field map so the pipeline can continue with a blank extraction.
type Interpreter struct {
	completer Completer
	logger    *slog.Logger
}

// NewInterpreter wires a Completer into the interpretation engine.
func NewInterpreter(completer Completer, logger *slog.Logger) *Interpreter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Interpreter{completer: completer, logger: logger}
}

// Interpret builds the deterministic prompt, invokes the model, and decodes
// the reply into the fixed field set. On any failure it logs the anomaly and
// returns the empty map.
func (i *Interpreter) Interpret(ctx context.Context, ocrText string) map[string]entity.ExtractedField {
	start := time.Now()

	reply, err := i.completer.Complete(ctx, BuildPrompt(ocrText))
	if err != nil {
		i.logger.Warn("llm.interpret.degraded",
			"reason", "provider_error",
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return map[string]entity.ExtractedField{}
	}

	content := []byte(StripCodeFence(reply))

	sanitized, _, err := SanitizeFields(content, i.logger)
	if err != nil {
		i.logger.Warn("llm.interpret.degraded",
			"reason", "unparseable_reply",
			"error", err,
			"reply_len", len(reply),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return map[string]entity.ExtractedField{}
	}

	if err := ValidateJSONAgainstSchema(BuildLabelJSONSchema(), sanitized); err != nil {
		i.logger.Warn("llm.interpret.degraded",
			"reason", "schema_violation",
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return map[string]entity.ExtractedField{}
	}

	var fields map[string]entity.ExtractedField
	if err := json.Unmarshal(sanitized, &fields); err != nil {
		i.logger.Warn("llm.interpret.degraded",
			"reason", "decode_failed",
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return map[string]entity.ExtractedField{}
	}

	i.logger.Info("llm.interpret.ok",
		"fields", len(fields),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return fields
}
