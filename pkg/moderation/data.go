package moderation

// DefaultRuleConfig returns the built-in English and Hindi rule table.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		Categories: []CategoryConfig{
			{
				ID:       CategoryPolitics,
				Severity: "medium",
				Sets: []PatternSetConfig{
					{
						Language: LanguageEnglish,
						Terms: []string{
							"bjp", "congress", "modi", "rahul gandhi", "kejriwal", "election", "elections",
							"politics", "political", "parliament", "prime minister", "vote for",
							"left wing", "right wing", "communist", "political party",
						},
					},
					{
						Language: LanguageHindi,
						Terms: []string{
							"भाजपा", "कांग्रेस", "मोदी", "राहुल गांधी", "चुनाव", "राजनीति", "नेता",
							"chunav", "rajneeti", "bhajpa",
						},
					},
				},
			},
			{
				ID:       CategoryNudity,
				Severity: "high",
				Sets: []PatternSetConfig{
					{
						Language: LanguageEnglish,
						Terms: []string{
							"nude", "nudes", "naked", "porn", "porno", "pornography", "xxx", "nsfw",
							"sex video", "onlyfans", "boobs", "topless", "strip club",
						},
						Patterns: []string{`\bp[o0]rn\w*`},
					},
					{
						Language: LanguageHindi,
						Terms:    []string{"नंगा", "नंगी", "अश्लील", "nangi", "nanga", "ashleel"},
					},
				},
			},
			{
				ID:       CategoryViolence,
				Severity: "high",
				Sets: []PatternSetConfig{
					{
						Language: LanguageEnglish,
						Terms: []string{
							"kill", "killing", "killer", "murder", "destroy", "stab", "shoot", "bomb",
							"attack", "assault", "terrorist", "behead", "massacre", "gun", "knife",
							"kill you", "hurt you", "beat you up",
						},
					},
					{
						Language: LanguageHindi,
						Terms: []string{
							"हत्या", "हमला", "बम", "गोली मार", "मार डालूंगा", "जान से मार",
							"hamla", "goli maar", "maar dalunga", "jaan se maar",
						},
					},
				},
			},
			{
				ID:       CategoryHateSpeech,
				Severity: "medium",
				Sets: []PatternSetConfig{
					{
						Language: LanguageEnglish,
						Terms: []string{
							"idiot", "stupid", "moron", "loser", "dumb", "hate you", "you people",
							"go back to your country",
						},
					},
					{
						Language: LanguageEnglish,
						Severity: "critical",
						Terms:    []string{"kill yourself", "kys", "retard", "subhuman", "go die"},
					},
					{
						Language: LanguageHindi,
						Terms:    []string{"बेवकूफ", "गधा", "नफरत", "bewakoof", "gadha", "nafrat"},
					},
				},
			},
			{
				ID:       CategorySpam,
				Severity: "low",
				Sets: []PatternSetConfig{
					{
						Language: LanguageEnglish,
						Terms: []string{
							"click here", "free money", "earn money fast", "buy followers",
							"dm for promotion", "limited offer", "work from home", "crypto giveaway",
							"check my bio", "follow for follow", "f4f", "l4l",
						},
						Patterns: []string{
							`\b(?:bit\.ly|tinyurl\.com|t\.me)/\S+`,
							`(?:\+91[\s-]?)?\b[6-9]\d{9}\b`,
						},
					},
					{
						Language: LanguageHindi,
						Terms:    []string{"पैसे कमाएं", "घर बैठे कमाएं", "paise kamao", "ghar baithe kamao"},
					},
				},
			},
			{
				ID:       CategoryDrugs,
				Severity: "high",
				Sets: []PatternSetConfig{
					{
						Language: LanguageEnglish,
						Terms: []string{
							"cocaine", "heroin", "meth", "weed", "marijuana", "mdma", "ecstasy", "lsd",
							"buy steroids", "steroids for sale",
						},
					},
					{
						Language: LanguageHindi,
						Terms:    []string{"गांजा", "चरस", "अफीम", "ganja", "charas", "afeem"},
					},
				},
			},
			{
				ID:       CategoryProfanity,
				Severity: "medium",
				Sets: []PatternSetConfig{
					{
						Language: LanguageEnglish,
						Terms: []string{
							"fuck", "fucking", "motherfucker", "shit", "bitch", "bastard", "asshole",
							"ass", "dick", "cunt",
						},
					},
					{
						Language: LanguageEnglish,
						Severity: "low",
						Terms:    []string{"damn", "crap", "wtf", "stfu"},
					},
					{
						Language: LanguageHindi,
						Terms: []string{
							"चूतिया", "हरामी", "कमीना", "साला", "गांडू", "भेनचोद", "मादरचोद",
							"chutiya", "harami", "kamina", "saala", "gandu", "bhenchod", "madarchod", "bsdk",
						},
					},
				},
			},
		},
		ContextPatterns: []ContextPatternConfig{
			{
				Name:     "threat_of_harm",
				Category: CategoryViolence,
				Severity: "critical",
				Language: LanguageEnglish,
				Pattern:  `\b(?:will|gonna|going to)\s+(?:kill|hurt|stab|shoot|murder|beat|attack|destroy)\s+(?:you|u|ya|him|her|them)\b`,
			},
			{
				Name:     "self_harm_incitement",
				Category: CategoryHateSpeech,
				Severity: "critical",
				Language: LanguageEnglish,
				Pattern:  `\b(?:go|you\s+should)\s+(?:kill|hang|hurt)\s+your\s*self\b`,
			},
			{
				Name:     "sexual_solicitation",
				Category: CategoryNudity,
				Severity: "critical",
				Language: LanguageEnglish,
				Pattern:  `\b(?:send|show)\s+(?:me\s+)?(?:your\s+)?(?:nudes?|naked)\b`,
			},
			{
				Name:     "drug_sale",
				Category: CategoryDrugs,
				Severity: "high",
				Language: LanguageEnglish,
				Pattern:  `\b(?:buy|sell|selling|cheap)\s+(?:weed|cocaine|mdma|meth|ganja|steroids)\b`,
			},
			{
				Name:     "money_scheme",
				Category: CategorySpam,
				Severity: "medium",
				Language: LanguageEnglish,
				Pattern:  `\b(?:earn|make)\s+(?:rs\.?\s?|₹|\$)?\d[\d,]*\s*(?:k|lakh|per\s+day|daily|a\s+day)\b`,
			},
			{
				Name:     "threat_of_harm_hindi",
				Category: CategoryViolence,
				Severity: "critical",
				Language: LanguageHindi,
				Pattern:  `(?:जान\s+से\s+मार|मार\s+डाल(?:ूंगा|ेंगे|ूँगा))|\b(?:jaan\s+se\s+maar|maar\s+(?:dalunga|dalenge|dunga))\b`,
			},
		},
		Whitelist: []WhitelistConfig{
			{
				Language: LanguageEnglish,
				Context:  ContextSportsShowcase,
				Terms: []string{
					"destroy", "destroyed", "competition", "kill", "killer", "killed it", "killing it",
					"crush", "crushed", "smash", "smashed", "beast", "beast mode", "attack", "shoot",
					"shot", "dominate", "savage", "monster", "bomb", "beat", "fire", "on fire",
					"killer instinct", "destroy the competition",
				},
			},
			{
				Language: LanguageHindi,
				Context:  ContextSportsShowcase,
				Terms: []string{
					"हमला", "धमाकेदार", "तूफानी", "छक्का", "चौका", "hamla", "dhamakedar", "toofani",
				},
			},
		},
	}
}
