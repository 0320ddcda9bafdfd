package generator

import "strings"

// xmlDeclaration is prepended to replies that arrive without one.
const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`

// CleanXML normalizes a raw model reply into BPMN XML: the first fenced
// code block is extracted if the reply is fenced, surrounding whitespace is
// trimmed, and an XML declaration is prepended when missing. A reply that
// already starts with an XML declaration passes through aside from the trim.
func CleanXML(text string) string {
	text = extractFenced(text, "```xml")

	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, "<?xml") {
		text = xmlDeclaration + "\n" + text
	}

	return text
}

// cleanJSON strips code fences from a JSON reply without touching the
// payload itself.
func cleanJSON(text string) string {
	return strings.TrimSpace(extractFenced(text, "```json"))
}

// extractFenced returns the contents of the first fenced block, preferring
// the language-tagged fence over a bare one. Unfenced text is returned
// unchanged.
func extractFenced(text, taggedFence string) string {
	if strings.Contains(text, taggedFence) {
		after := strings.SplitN(text, taggedFence, 2)[1]
		return strings.SplitN(after, "```", 2)[0]
	}
	if strings.Contains(text, "```") {
		parts := strings.Split(text, "```")
		if len(parts) >= 2 {
			return parts[1]
		}
	}
	return text
}
