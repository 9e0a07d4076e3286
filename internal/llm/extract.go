package llm

import "strings"

// Response is the union of reply shapes seen from chat-completion style
// providers: a plain text/content field, an OpenAI choices list, a wrapped
// chain of message components, or a bare answer field. Decoding is lenient;
// extraction decides which part to use.
type Response struct {
	Text    string `json:"text,omitempty"`
	Content string `json:"content,omitempty"`
	Message string `json:"message,omitempty"`
	Answer  string `json:"answer,omitempty"`

	Choices []Choice         `json:"choices,omitempty"`
	Chain   []ChainComponent `json:"result_chain,omitempty"`
}

type Choice struct {
	Text    string        `json:"text,omitempty"`
	Message ChoiceMessage `json:"message,omitempty"`
}

type ChoiceMessage struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}

// ChainComponent is one element of a wrapped component-chain reply.
type ChainComponent struct {
	Type string `json:"type,omitempty"`
	Text string `json:"text,omitempty"`
}

// extractor pulls candidate text out of one response shape.
// Extractors must not sanitize; ExtractText applies cleanup once at the end.
type extractor func(Response) string

// Flat fields are tried before the choices list: providers that return a
// bare text/content field put the final text there even when a choices
// array is also present.
var extractionPipeline = []extractor{
	extractFlatFields,
	extractChoicesMessage,
	extractChoicesText,
	extractChain,
}

// ExtractText tries each known response shape in order and returns the first
// non-empty candidate, sanitized. Empty means the response held no usable text.
func ExtractText(r Response) string {
	for _, ex := range extractionPipeline {
		if text := ex(r); text != "" {
			return Sanitize(text)
		}
	}
	return ""
}

func extractChoicesMessage(r Response) string {
	for _, ch := range r.Choices {
		if s := strings.TrimSpace(ch.Message.Content); s != "" {
			return s
		}
	}
	return ""
}

func extractChoicesText(r Response) string {
	for _, ch := range r.Choices {
		if s := strings.TrimSpace(ch.Text); s != "" {
			return s
		}
	}
	return ""
}

func extractChain(r Response) string {
	var parts []string
	for _, comp := range r.Chain {
		if s := strings.TrimSpace(comp.Text); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "")
}

func extractFlatFields(r Response) string {
	for _, s := range []string{r.Text, r.Content, r.Message, r.Answer} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}
