package i18n

import (
	"strconv"

	"golang.org/x/text/message"

	"svw.info/make24/internal/domain"
)

// Verdict is the one-line feedback shown after a check.
func Verdict(p *message.Printer, correct bool, o domain.Outcome) string {
	switch {
	case correct:
		return p.Sprintf("game.success")
	case !o.Valid:
		return p.Sprintf("game.fail") + " " + p.Sprintf("game.invalid."+string(o.Reason))
	default:
		return p.Sprintf("game.fail") + " " + p.Sprintf("game.value", strconv.FormatFloat(o.Value, 'g', 6, 64))
	}
}

// ConflictText explains one usage conflict.
func ConflictText(p *message.Printer, c domain.Conflict) string {
	return p.Sprintf("game.conflict."+c.Reason, c.Value)
}
