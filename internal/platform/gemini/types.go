package gemini

import "google.golang.org/genai"

// generateContentRequest is the JSON body of a generateContent call.
type generateContentRequest struct {
	Contents       []content       `json:"contents"`
	SafetySettings []SafetySetting `json:"safetySettings,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// SafetySetting overrides the blocking threshold for one harm category.
type SafetySetting struct {
	Category  genai.HarmCategory       `json:"category"`
	Threshold genai.HarmBlockThreshold `json:"threshold"`
}

// generateContentResponse is the subset of the success body the client reads.
type generateContentResponse struct {
	Candidates     []candidate     `json:"candidates"`
	PromptFeedback *promptFeedback `json:"promptFeedback,omitempty"`
	UsageMetadata  *usageMetadata  `json:"usageMetadata,omitempty"`
	ModelVersion   string          `json:"modelVersion,omitempty"`
}

type candidate struct {
	Content      *content           `json:"content,omitempty"`
	FinishReason genai.FinishReason `json:"finishReason,omitempty"`
}

type promptFeedback struct {
	BlockReason genai.BlockedReason `json:"blockReason,omitempty"`
}

type usageMetadata struct {
	PromptTokenCount     int32 `json:"promptTokenCount"`
	CandidatesTokenCount int32 `json:"candidatesTokenCount"`
	TotalTokenCount      int32 `json:"totalTokenCount"`
}

// errorResponse is the body of a non-2xx response.
type errorResponse struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}
