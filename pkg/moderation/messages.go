package moderation

const (
	WarningMessage  = "Your content may contain inappropriate language. Please review before posting."
	FallbackMessage = "This content violates our community guidelines."
)

var categoryMessages = map[Category]string{
	CategoryPolitics:   "Political content is not allowed on this platform.",
	CategoryNudity:     "Sexual or explicit content is not allowed.",
	CategoryViolence:   "Violent or threatening language is not allowed.",
	CategoryHateSpeech: "Hateful or abusive language is not allowed.",
	CategorySpam:       "This looks like spam or a scam.",
	CategoryDrugs:      "References to drugs or illegal substances are not allowed.",
	CategoryProfanity:  "Please keep your language respectful.",
}

// PrimaryCategory is the category of the first violation carrying the maximum
// severity. It is empty for clean results.
func (r *Result) PrimaryCategory() Category {
	if r.MaxSeverity == nil {
		return ""
	}
	for _, v := range r.Violations {
		if v.Severity == *r.MaxSeverity {
			return v.Category
		}
	}
	return ""
}

// UserMessage returns the text shown to the author of rejected content.
func UserMessage(r *Result) string {
	if msg, ok := categoryMessages[r.PrimaryCategory()]; ok {
		return msg
	}
	return FallbackMessage
}
