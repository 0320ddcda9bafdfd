package generator

import "strings"

// systemPrompt frames every completion call.
const systemPrompt = "You are a process modeling expert that converts text descriptions into formal process models."

// xmlOnlyDirective closes every BPMN prompt so the reply can be cleaned
// mechanically.
const xmlOnlyDirective = "Return only the XML code without any explanation."

const jsonOnlyDirective = "Return only valid JSON without any explanation."

// buildGeneratePrompt assembles the BPMN generation prompt: the fixed
// instructional template, the user's description verbatim, an optional
// custom-instructions block, and the closing XML-only directive.
func buildGeneratePrompt(description, instructions string) string {
	var b strings.Builder

	b.WriteString("Convert the following process description into a BPMN 2.0 XML format:\n\n")
	b.WriteString(description)
	b.WriteString("\n\nPlease provide a valid BPMN 2.0 XML that includes:\n")
	b.WriteString("- Start and end events\n")
	b.WriteString("- Tasks/activities\n")
	b.WriteString("- Gateways (if needed)\n")
	b.WriteString("- Sequence flows\n")

	if instructions != "" {
		b.WriteString("\nAdditional instructions:\n")
		b.WriteString(instructions)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(xmlOnlyDirective)

	return b.String()
}

// buildRefinePrompt assembles the feedback-driven update prompt around the
// session's current model.
func buildRefinePrompt(currentXML, feedback string) string {
	var b strings.Builder

	b.WriteString("Update the following BPMN 2.0 XML model according to the feedback below. ")
	b.WriteString("Keep the overall structure intact and change only what the feedback requires.\n\n")
	b.WriteString("Current model:\n")
	b.WriteString(currentXML)
	b.WriteString("\n\nFeedback:\n")
	b.WriteString(feedback)
	b.WriteString("\n\n")
	b.WriteString(xmlOnlyDirective)

	return b.String()
}

// buildPetriNetPrompt assembles the Petri-net structure prompt.
func buildPetriNetPrompt(description string) string {
	var b strings.Builder

	b.WriteString("Convert the following process description into a Petri Net structure:\n\n")
	b.WriteString(description)
	b.WriteString("\n\nProvide the Petri Net as a structured JSON with:\n")
	b.WriteString("- places: list of place names\n")
	b.WriteString("- transitions: list of transition names\n")
	b.WriteString("- arcs: list of arcs with source and target\n")
	b.WriteString("\n")
	b.WriteString(jsonOnlyDirective)

	return b.String()
}
