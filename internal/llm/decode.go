package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// GeneratedText is one decoded fragment of a reply. Whole-document replies
// decode to a single fragment; streamed replies to one per chunk.
type GeneratedText struct {
	Text string
	Done bool // the service marked this as the final fragment
}

var errUnknownShape = errors.New("unrecognised response shape")

// Decoded is the result of decoding a full reply body.
type Decoded struct {
	Text      string
	Fragments int
	Skipped   int // malformed chunks ignored in a streamed body
}

// Decode turns a reply body in any supported shape into its text. A body
// that is not a single JSON document is treated as a stream of chunks, one
// per line, with optional SSE "data:" framing. Malformed chunks are skipped;
// decoding fails only when no chunk could be read.
func Decode(body []byte) (Decoded, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return Decoded{}, fmt.Errorf("decode response: empty body")
	}

	if frag, err := decodeChunk(body); err == nil {
		return Decoded{Text: frag.Text, Fragments: 1}, nil
	}

	var (
		out strings.Builder
		res Decoded
	)
	for _, line := range bytes.Split(body, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || isSSEField(line) {
			continue
		}
		if rest, ok := bytes.CutPrefix(line, []byte("data:")); ok {
			line = bytes.TrimSpace(rest)
		}
		if string(line) == "[DONE]" {
			break
		}

		frag, err := decodeChunk(line)
		if err != nil {
			res.Skipped++
			continue
		}
		res.Fragments++
		out.WriteString(frag.Text)
		if frag.Done {
			break
		}
	}

	if res.Fragments == 0 {
		return res, fmt.Errorf("decode response: no readable chunk (%d malformed)", res.Skipped)
	}
	res.Text = out.String()
	return res, nil
}

// isSSEField reports SSE lines that never carry payload: comments and the
// event, id and retry fields.
func isSSEField(line []byte) bool {
	if line[0] == ':' {
		return true
	}
	for _, p := range []string{"event:", "id:", "retry:"} {
		if bytes.HasPrefix(line, []byte(p)) {
			return true
		}
	}
	return false
}

// ── Wire shapes ─────────────────────────────────────────────────────

type wireMessage struct {
	Content string `json:"content"`
}

type wireChoice struct {
	Message *wireMessage `json:"message"` // chat completion
	Delta   *wireMessage `json:"delta"`   // streamed chat completion
	Text    string       `json:"text"`    // legacy completion
}

// wireChunk is the union of every known reply object. Pointer fields tell
// which shape a document is.
type wireChunk struct {
	Choices       []wireChoice `json:"choices"`        // OpenAI-compatible
	Response      *string      `json:"response"`       // Ollama generate
	Message       *wireMessage `json:"message"`        // Ollama chat
	Done          bool         `json:"done"`           // Ollama
	GeneratedText *string      `json:"generated_text"` // Hugging Face inference
}

func decodeChunk(raw []byte) (GeneratedText, error) {
	if len(raw) > 0 && raw[0] == '[' {
		var list []wireChunk
		if err := json.Unmarshal(raw, &list); err != nil {
			return GeneratedText{}, err
		}
		if len(list) == 0 || list[0].GeneratedText == nil {
			return GeneratedText{}, errUnknownShape
		}
		return GeneratedText{Text: *list[0].GeneratedText, Done: true}, nil
	}

	var c wireChunk
	if err := json.Unmarshal(raw, &c); err != nil {
		return GeneratedText{}, err
	}

	switch {
	case c.Choices != nil:
		if len(c.Choices) == 0 {
			return GeneratedText{}, nil
		}
		ch := c.Choices[0]
		switch {
		case ch.Message != nil:
			return GeneratedText{Text: ch.Message.Content, Done: true}, nil
		case ch.Delta != nil:
			return GeneratedText{Text: ch.Delta.Content}, nil
		default:
			return GeneratedText{Text: ch.Text}, nil
		}
	case c.Response != nil:
		return GeneratedText{Text: *c.Response, Done: c.Done}, nil
	case c.Message != nil:
		return GeneratedText{Text: c.Message.Content, Done: c.Done}, nil
	case c.GeneratedText != nil:
		return GeneratedText{Text: *c.GeneratedText, Done: true}, nil
	}
	return GeneratedText{}, errUnknownShape
}
