package lexicon

// DefaultVersion names the built-in tables.
const DefaultVersion = "2025.1"

// Default returns a fresh copy of the built-in tables.
func Default() *Lexicon {
	return &Lexicon{
		Version: DefaultVersion,
		Week: WeekTables{
			Mood: []Weighted{
				{"happy", 0.6}, {"great", 0.6}, {"joy", 0.6}, {"love", 0.6},
				{"fun", 0.5}, {"good", 0.5}, {"relaxed", 0.5}, {"calm", 0.5},
				{"excited", 0.5}, {"grateful", 0.5},
				{"sad", -0.6}, {"stress", -0.6}, {"anxious", -0.6}, {"angry", -0.6},
				{"tired", -0.5}, {"bad", -0.5}, {"lonely", -0.5}, {"exhausted", -0.5},
				{"sick", -0.5},
			},
			Energy: []Weighted{
				{"gym", 0.7}, {"workout", 0.7}, {"running", 0.7}, {"jog", 0.7},
				{"hike", 0.7}, {"swim", 0.7}, {"cycling", 0.7},
				{"focus", 0.6}, {"productive", 0.6}, {"walk", 0.6}, {"study", 0.6},
				{"deep work", 0.6},
			},
			Connection: []Weighted{
				{"friend", 0.15}, {"family", 0.15}, {"party", 0.15},
				{"call", 0.1}, {"meet", 0.1}, {"talk", 0.1}, {"group", 0.1},
				{"coffee with", 0.1}, {"dinner with", 0.1}, {"team", 0.1},
			},
			KmDivisor: 10,
		},
		Stress: StressTables{
			Triggers: []Group{
				{Name: "deadline", Delta: 2, Keywords: []string{
					"exam", "deadline", "test", "presentation", "interview", "submission",
				}},
				{Name: "sleep", Delta: 2, Keywords: []string{
					"no sleep", "couldn't sleep", "could not sleep", "insomnia",
					"up all night", "sleepless", "barely slept", "exhausted",
				}},
				{Name: "conflict", Delta: 2, Keywords: []string{
					"argument", "argued", "fight", "conflict", "yelled", "shouted",
				}},
			},
			Recovery: []Group{
				{Name: "recovery", Delta: -1, Keywords: []string{
					"resting", "rested", "relax", "walk", "breath", "meditat", "yoga", "stretch",
				}, Words: []string{"rest"}},
			},
			Emotions: []Tagged{
				{Tag: "relieved", Keywords: []string{
					"calm", "relieved", "relief", "better", "resolved", "finally",
				}},
				{Tag: "angry", Keywords: []string{
					"angry", "furious", "mad at", "annoyed", "frustrat", "irritat",
				}},
				{Tag: "afraid", Keywords: []string{
					"afraid", "scared", "fear", "panic", "terrified", "dread",
				}},
			},
			Somatic: []Tagged{
				{Tag: "headache", Keywords: []string{"headache", "migraine", "head hurt"}},
				{Tag: "chest tightness", Keywords: []string{"chest", "heart racing", "heart pounding", "palpitation"}},
				{Tag: "upset stomach", Keywords: []string{"stomach", "nausea", "nauseous", "appetite"}},
			},
		},
		Dream: DreamTables{
			Palettes: []Palette{
				{Emotion: "peaceful", Intensity: 3, Color: "#5b8def", Keywords: []string{
					"calm", "peace", "gentle", "safe", "quiet", "soft", "float", "serene",
				}},
				{Emotion: "afraid", Intensity: 8, Color: "#e04848", Keywords: []string{
					"scared", "afraid", "fear", "dark", "chase", "chasing", "falling",
					"terrif", "nightmare", "monster",
				}},
				{Emotion: "excited", Intensity: 7, Color: "#f2a93b", Keywords: []string{
					"excit", "flying", "fly", "bright", "thrill", "joy", "amazing", "wonder",
				}},
			},
			Fallback: Palette{Emotion: "curious", Intensity: 5, Color: "#8b5cf6"},
			Guides: []string{
				"you", "your", "he", "she", "him", "her", "they", "them", "we", "us",
				"friend", "friends", "guide", "someone", "somebody", "stranger",
				"mother", "mom", "father", "dad", "sister", "brother",
				"companion", "teacher", "partner",
			},
		},
		Attendance: AttendanceTables{
			Present: []string{"1", "true", "yes", "present", "p"},
			Absent:  []string{"0", "false", "no", "absent", "a"},
		},
		Resolver: ResolverTables{
			CSVAttendance: []string{"present", "absent", "attend"},
			Dream:         []string{"dream", "night", "floating", "strange", "vision"},
			Stress:        []string{"anxious", "stress", "tired", "burnout", "worry", "overwhelmed", "deadline", "panic"},
		},
	}
}
