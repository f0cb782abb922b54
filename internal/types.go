package internal

// MessageTypeRequestTranslation is the only message type the orchestrator answers.
const MessageTypeRequestTranslation = "REQUEST_TRANSLATION"

// TranslationRequest is the message a UI-side requester sends across the
// message boundary.
type TranslationRequest struct {
	ID          string `json:"id,omitempty"`
	Type        string `json:"type"`
	Text        string `json:"text"`
	PageContent string `json:"pageContent,omitempty"`
}

// TranslationResponse is the envelope sent back to the requester. Exactly one
// of Translation and Error is set.
type TranslationResponse struct {
	ID          string `json:"id,omitempty"`
	Success     bool   `json:"success"`
	Translation string `json:"translation,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Succeeded wraps a translated text in a success envelope.
func Succeeded(translation string) TranslationResponse {
	return TranslationResponse{Success: true, Translation: translation}
}

// Failed wraps a message in a failure envelope.
func Failed(message string) TranslationResponse {
	return TranslationResponse{Success: false, Error: message}
}
