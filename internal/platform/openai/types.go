package openai

import "strings"

// inputMessage is one entry of the Responses API "input" array.
type inputMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// textFormat constrains the shape of the model's text output.
type textFormat struct {
	Type   string         `json:"type"`
	Name   string         `json:"name,omitempty"`
	Schema map[string]any `json:"schema,omitempty"`
	Strict bool           `json:"strict,omitempty"`
}

type textOptions struct {
	Format textFormat `json:"format"`
}

// responsesRequest is the body of POST /responses.
type responsesRequest struct {
	Model string         `json:"model"`
	Input []inputMessage `json:"input"`
	Text  *textOptions   `json:"text,omitempty"`
}

type outputContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type outputItem struct {
	Type    string          `json:"type"`
	Role    string          `json:"role"`
	Content []outputContent `json:"content"`
}

// responsesResponse holds the fields read from a Responses API reply.
type responsesResponse struct {
	ID         string       `json:"id"`
	Status     string       `json:"status"`
	OutputText string       `json:"output_text"`
	Output     []outputItem `json:"output"`
}

// text returns output_text when present, otherwise the concatenation of every
// output_text content part.
func (r *responsesResponse) text() string {
	if r.OutputText != "" {
		return r.OutputText
	}

	var b strings.Builder
	for _, item := range r.Output {
		for _, content := range item.Content {
			if content.Type == "output_text" {
				b.WriteString(content.Text)
			}
		}
	}
	return b.String()
}

// errorEnvelope is the error body returned on non-2xx replies.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
}
