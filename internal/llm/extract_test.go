package llm

import "testing"

func TestExtractTextFlatFieldWins(t *testing.T) {
	r := Response{
		Text:    "flat",
		Choices: []Choice{{Message: ChoiceMessage{Role: "assistant", Content: "from message"}}},
	}
	if got := ExtractText(r); got != "flat" {
		t.Fatalf("got %q, want the flat text field", got)
	}
}

func TestExtractTextChoicesMessage(t *testing.T) {
	r := Response{
		Choices: []Choice{
			{Message: ChoiceMessage{Role: "assistant", Content: "  "}},
			{Message: ChoiceMessage{Role: "assistant", Content: "from message"}},
		},
	}
	if got := ExtractText(r); got != "from message" {
		t.Fatalf("got %q, want choices message content", got)
	}
}

func TestExtractTextChoicesTextFallback(t *testing.T) {
	r := Response{
		Choices: []Choice{{Text: "from text"}},
	}
	if got := ExtractText(r); got != "from text" {
		t.Fatalf("got %q, want choices text", got)
	}
}

func TestExtractTextChainJoins(t *testing.T) {
	r := Response{Chain: []ChainComponent{
		{Type: "text", Text: "节日"},
		{Type: "text", Text: "  "},
		{Type: "text", Text: "快乐"},
	}}
	if got := ExtractText(r); got != "节日快乐" {
		t.Fatalf("got %q, want joined chain text", got)
	}
}

func TestExtractTextFlatFieldOrder(t *testing.T) {
	r := Response{Content: "content", Message: "message", Answer: "answer"}
	if got := ExtractText(r); got != "content" {
		t.Fatalf("got %q, want content before message and answer", got)
	}
}

func TestExtractTextEmpty(t *testing.T) {
	if got := ExtractText(Response{}); got != "" {
		t.Fatalf("empty response produced %q", got)
	}
	r := Response{Choices: []Choice{{Text: "   "}}}
	if got := ExtractText(r); got != "" {
		t.Fatalf("whitespace-only response produced %q", got)
	}
}

func TestSanitizeKeepsTextAfterAnswerMarker(t *testing.T) {
	in := "思考：今天是什么节日\n答复：祝大家元旦快乐！"
	if got := Sanitize(in); got != "祝大家元旦快乐！" {
		t.Fatalf("got %q", got)
	}
}

func TestSanitizeLastAnswerMarkerWins(t *testing.T) {
	in := "答复：初稿\n答复：终稿祝福"
	if got := Sanitize(in); got != "终稿祝福" {
		t.Fatalf("got %q", got)
	}
}

func TestSanitizeDropsReasoningLines(t *testing.T) {
	in := "analysis: weighing the options\n新春快乐，万事如意。"
	if got := Sanitize(in); got != "新春快乐，万事如意。" {
		t.Fatalf("got %q", got)
	}
}

func TestSanitizeEnglishMarkers(t *testing.T) {
	in := "Reasoning: thinking hard\nFinal answer: Happy New Year!"
	if got := Sanitize(in); got != "Happy New Year!" {
		t.Fatalf("got %q", got)
	}
}

func TestSanitizeFallsBackWhenEverythingFiltered(t *testing.T) {
	in := "思考：只有思考内容"
	if got := Sanitize(in); got != in {
		t.Fatalf("got %q, want the original text back", got)
	}
}

func TestSanitizePlainTextUntouched(t *testing.T) {
	in := "中秋团圆，阖家幸福。"
	if got := Sanitize(in); got != in {
		t.Fatalf("got %q", got)
	}
}
