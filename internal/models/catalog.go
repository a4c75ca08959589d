package models

// Fixed catalogs the studio UI is built from. These mirror the set of
// prebuilt Gemini TTS voices plus the product's language, emotion and
// singing-style selections. All lookups are by ID.

type SelectOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type VoiceOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Gender      string `json:"gender"` // "male" | "female", UI grouping only
}

type LanguageOption struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Accents []SelectOption `json:"accents"`
}

// HasAccent reports whether accentID is a member of this language's accent set.
func (l LanguageOption) HasAccent(accentID string) bool {
	for _, a := range l.Accents {
		if a.Value == accentID {
			return true
		}
	}
	return false
}

var AvailableVoices = []VoiceOption{
	{ID: "Zephyr", Name: "Zephyr", Description: "Friendly & Warm", Gender: "male"},
	{ID: "Kore", Name: "Kore", Description: "Calm & Soothing", Gender: "female"},
	{ID: "Puck", Name: "Puck", Description: "Energetic & Crisp", Gender: "male"},
	{ID: "Charon", Name: "Charon", Description: "Deep & Authoritative", Gender: "male"},
	{ID: "Fenrir", Name: "Fenrir", Description: "Assertive & Clear", Gender: "male"},
}

var AvailableLanguages = []LanguageOption{
	{
		ID:   "English",
		Name: "English",
		Accents: []SelectOption{
			{Name: "American", Value: "American"},
			{Name: "British", Value: "British"},
			{Name: "Australian", Value: "Australian"},
			{Name: "Indian", Value: "Indian"},
		},
	},
	{
		ID:   "Spanish",
		Name: "Spanish",
		Accents: []SelectOption{
			{Name: "Castilian (Spain)", Value: "Castilian"},
			{Name: "Mexican", Value: "Mexican"},
		},
	},
	{
		ID:   "French",
		Name: "French",
		Accents: []SelectOption{
			{Name: "Standard (France)", Value: "Standard"},
			{Name: "Canadian", Value: "Canadian"},
		},
	},
	{ID: "German", Name: "German", Accents: []SelectOption{{Name: "Standard", Value: "Standard"}}},
	{ID: "Italian", Name: "Italian", Accents: []SelectOption{{Name: "Standard", Value: "Standard"}}},
	{ID: "Japanese", Name: "Japanese", Accents: []SelectOption{{Name: "Standard", Value: "Standard"}}},
	{ID: "Korean", Name: "Korean", Accents: []SelectOption{{Name: "Standard", Value: "Standard"}}},
	{ID: "Malay", Name: "Malay", Accents: []SelectOption{{Name: "Malaysian", Value: "Malaysian"}}},
	{
		ID:   "Portuguese",
		Name: "Portuguese",
		Accents: []SelectOption{
			{Name: "Brazilian", Value: "Brazilian"},
			{Name: "European", Value: "European"},
		},
	},
	{ID: "Russian", Name: "Russian", Accents: []SelectOption{{Name: "Standard", Value: "Standard"}}},
	{ID: "Chinese (Mandarin)", Name: "Chinese (Mandarin)", Accents: []SelectOption{{Name: "Standard", Value: "Standard"}}},
	{ID: "Hindi", Name: "Hindi", Accents: []SelectOption{{Name: "Standard", Value: "Standard"}}},
	{ID: "Arabic", Name: "Arabic", Accents: []SelectOption{{Name: "Standard", Value: "Standard"}}},
}

var AvailableSingingStyles = []SelectOption{
	{Name: "Cheerful Pop", Value: "cheerful_pop"},
	{Name: "Gentle Lullaby", Value: "gentle_lullaby"},
	{Name: "Folk Ballad", Value: "folk_ballad"},
	{Name: "Dramatic Opera", Value: "dramatic_opera"},
	{Name: "Simple Rap", Value: "simple_rap"},
}

var AvailableEmotions = []SelectOption{
	{Name: "Neutral", Value: "neutral"},
	{Name: "Happy / Cheerful", Value: "happy"},
	{Name: "Sad / Somber", Value: "sad"},
	{Name: "Angry / Annoyed", Value: "angry"},
	{Name: "Whispering", Value: "whispering"},
	{Name: "Excited", Value: "excited"},
}

// BuiltInModules ship read-only with every install. They are merged ahead
// of user modules in listings and can never be deleted.
var BuiltInModules = []VoiceModule{
	{
		ID:          "vm_cyber_narrator",
		Name:        "Cyber Narrator",
		Description: "A futuristic, slightly synthetic voice for tech demos.",
		ColorTag:    "cyan",
		BuiltIn:     true,
		Settings: ModuleSettings{
			Voice:        "Fenrir",
			Pitch:        -2,
			Timbre:       2,
			SpeakingRate: 110,
			Emotion:      "neutral",
			StylePrompt:  "Speak with a precise, metallic, and futuristic cadence. Enunciate clearly like a high-tech AI interface.",
		},
	},
	{
		ID:          "vm_old_storyteller",
		Name:        "Elder Storyteller",
		Description: "A wise, raspy voice perfect for fantasy narration.",
		ColorTag:    "amber",
		BuiltIn:     true,
		Settings: ModuleSettings{
			Voice:        "Charon",
			Pitch:        -4,
			Timbre:       -3,
			SpeakingRate: 85,
			Emotion:      "neutral",
			StylePrompt:  "Speak with a raspy, breathy, and aged quality. Add pauses for dramatic effect, like an old wizard telling a tale by a fire.",
		},
	},
	{
		ID:          "vm_news_anchor",
		Name:        "Prime News",
		Description: "Professional broadcast quality standard.",
		ColorTag:    "red",
		BuiltIn:     true,
		Settings: ModuleSettings{
			Voice:        "Puck",
			Pitch:        0,
			Timbre:       1,
			SpeakingRate: 105,
			Emotion:      "excited",
			StylePrompt:  "Speak with the professional, projecting tone of a prime-time news anchor. Use clear, punchy intonation.",
		},
	},
	{
		ID:          "vm_ethereal",
		Name:        "Ethereal Spirit",
		Description: "Haunting, echoey, and soft.",
		ColorTag:    "violet",
		BuiltIn:     true,
		Settings: ModuleSettings{
			Voice:        "Kore",
			Pitch:        3,
			Timbre:       0,
			SpeakingRate: 90,
			Emotion:      "whispering",
			StylePrompt:  "Speak in a dreamy, floating, and ethereal manner. Elongate vowels slightly and maintain a soft, haunting atmosphere.",
		},
	},
}

// LanguageByID looks up a language catalog entry.
func LanguageByID(id string) (LanguageOption, bool) {
	for _, l := range AvailableLanguages {
		if l.ID == id {
			return l, true
		}
	}
	return LanguageOption{}, false
}

// VoiceByID looks up a voice catalog entry.
func VoiceByID(id string) (VoiceOption, bool) {
	for _, v := range AvailableVoices {
		if v.ID == id {
			return v, true
		}
	}
	return VoiceOption{}, false
}

// BuiltInModuleByID looks up a built-in module.
func BuiltInModuleByID(id string) (VoiceModule, bool) {
	for _, m := range BuiltInModules {
		if m.ID == id {
			return m, true
		}
	}
	return VoiceModule{}, false
}

// IsValidEmotion reports membership in the emotion catalog.
func IsValidEmotion(id string) bool {
	for _, e := range AvailableEmotions {
		if e.Value == id {
			return true
		}
	}
	return false
}
