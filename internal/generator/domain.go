package generator

import (
	"promoai-api/internal/common"
	"promoai-api/internal/llm"
)

// GenerateRequest asks for a fresh BPMN model from a process description.
type GenerateRequest struct {
	SessionID    common.SessionID `json:"session_id" validate:"required"`
	Provider     llm.Kind         `json:"provider" validate:"required"`
	Model        string           `json:"model,omitempty"`
	Description  string           `json:"description" validate:"required"`
	Instructions string           `json:"instructions,omitempty"`
}

// RefineRequest asks for an updated model given the current XML and one
// round of user feedback.
type RefineRequest struct {
	SessionID  common.SessionID `json:"session_id" validate:"required"`
	Provider   llm.Kind         `json:"provider" validate:"required"`
	Model      string           `json:"model,omitempty"`
	CurrentXML string           `json:"current_xml" validate:"required"`
	Feedback   string           `json:"feedback" validate:"required"`
}

// PetriNetRequest asks for a Petri net structure from a process description.
type PetriNetRequest struct {
	SessionID   common.SessionID `json:"session_id" validate:"required"`
	Provider    llm.Kind         `json:"provider" validate:"required"`
	Model       string           `json:"model,omitempty"`
	Description string           `json:"description" validate:"required"`
}

// Result is the envelope for a BPMN generation round. A vendor failure is
// always reported as StatusError with an empty BPMNXML; it is never folded
// into a success envelope.
type Result struct {
	Status  common.ResultStatus `json:"status" validate:"required"`
	BPMNXML string              `json:"bpmn_xml,omitempty"`
	Message string              `json:"message"`
}

// IsSuccess reports whether the round produced a model
func (r Result) IsSuccess() bool {
	return r.Status == common.StatusSuccess
}

// Arc is a directed edge between a place and a transition.
type Arc struct {
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
}

// PetriNet is the parsed structure returned by the Petri-net prompt.
type PetriNet struct {
	Places      []string `json:"places"`
	Transitions []string `json:"transitions"`
	Arcs        []Arc    `json:"arcs"`
}

// PetriNetResult is the envelope for a Petri-net generation round.
type PetriNetResult struct {
	Status   common.ResultStatus `json:"status" validate:"required"`
	PetriNet *PetriNet           `json:"petri_net,omitempty"`
	Message  string              `json:"message"`
}
