package summary

import (
	"fmt"
	"os"
	"strings"
)

const maxCSVLines = 20

const interpretationPrompt = `You are a data humanism interpretation engine in the style of Dear Data.

Read the journal entry below as a human narrative. Notice the mood, tone,
energy and rhythm of the writing, and decide which kind of entry it is:
week, stress, dream, attendance or stats.

You only interpret. Do not design a chart, do not describe shapes or colours
for a drawing and do not invent numbers that are not in the entry.

Respond with a single JSON object and nothing else:
{
  "summary": "one short paragraph interpreting the entry",
  "moodWord": "a single lowercase word for the overall mood",
  "moodIntensity": 1-5,
  "journalType": "week | stress | dream | attendance | stats"
}

The JSON must be valid. Do not wrap it in backticks.`

// Instructions returns the system prompt, led by the optional persona text.
func Instructions(identity string) string {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return interpretationPrompt
	}
	return identity + "\n\n" + interpretationPrompt
}

// UserInput renders a request as the user turn. Only the first rows of a
// table are sent.
func UserInput(req Request) string {
	mode := strings.TrimSpace(req.Mode)
	if mode == "" {
		mode = "auto"
	}
	table := "[no_table]"
	if csv := strings.TrimSpace(req.CSV); csv != "" {
		lines := strings.Split(csv, "\n")
		if len(lines) > maxCSVLines {
			lines = lines[:maxCSVLines]
		}
		table = strings.Join(lines, "\n")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "user_selected_mode: %s\n\n", mode)
	fmt.Fprintf(&b, "user_text:\n\"\"\"%s\"\"\"\n\n", req.Text)
	fmt.Fprintf(&b, "table_csv:\n\"\"\"%s\"\"\"\n", table)
	return b.String()
}

// LoadIdentity reads the persona file once. An empty path yields no persona.
func LoadIdentity(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read identity: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
