package moderation

type decision struct {
	block bool
	warn  bool
	flag  bool
}

func (d decision) action() Action {
	switch {
	case d.block:
		return ActionBlock
	case d.flag:
		return ActionFlag
	case d.warn:
		return ActionWarn
	default:
		return ActionAllow
	}
}

type policy func(r *Result) decision

var presets = map[Context]policy{
	ContextGeneral:             gradedPolicy,
	ContextSportsShowcase:      gradedPolicy,
	ContextChat:                strictPolicy,
	ContextServerAuthoritative: riskPolicy,
}

func atLeast(r *Result, s Severity) bool {
	return r.MaxSeverity != nil && *r.MaxSeverity >= s
}

// gradedPolicy blocks anything of medium severity or worse and only warns
// when every violation is low.
func gradedPolicy(r *Result) decision {
	return decision{
		block: atLeast(r, SeverityMedium),
		warn:  r.MaxSeverity != nil && *r.MaxSeverity == SeverityLow,
		flag:  atLeast(r, SeverityHigh),
	}
}

// strictPolicy is used for chat: any violation blocks and there is no warning tier.
func strictPolicy(r *Result) decision {
	return decision{
		block: len(r.Violations) > 0,
		flag:  atLeast(r, SeverityHigh),
	}
}

const (
	riskBlockThreshold = 50
	riskFlagThreshold  = 30
	riskWarnThreshold  = 15
)

// riskPolicy drives the post creation trigger from the aggregate risk score.
// Warn is only reported when nothing stronger applies.
func riskPolicy(r *Result) decision {
	d := decision{
		block: r.RiskScore >= riskBlockThreshold || atLeast(r, SeverityCritical),
		flag:  r.RiskScore >= riskFlagThreshold || atLeast(r, SeverityHigh),
	}
	d.warn = !d.block && !d.flag && r.RiskScore >= riskWarnThreshold
	return d
}

// PolicyFor exposes the preset name used for a context, for logs and metrics labels.
func PolicyFor(ctx Context) string {
	switch ctx {
	case ContextChat:
		return "strict"
	case ContextServerAuthoritative:
		return "risk"
	default:
		return "graded"
	}
}
