package transcript

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Document is a transcript read back from text.
type Document struct {
	Name       string
	Email      string
	Domain     string
	Date       time.Time
	Asked      int
	Answered   int
	Correct    int
	Wrong      int
	FinalScore float64 // percentage
	Turns      []Turn
}

// Turn is one question block of a Document.
type Turn struct {
	Question        string
	Answer          string
	ReferenceAnswer string
	Score           float64
	Explanation     string
}

// Read parses a transcript produced by Format.
func Read(r io.Reader) (*Document, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read transcript: %w", err)
		}
		return nil, fmt.Errorf("read transcript: empty input")
	}
	if strings.TrimSpace(sc.Text()) != Title {
		return nil, fmt.Errorf("read transcript: missing %q title", Title)
	}

	doc := &Document{Turns: []Turn{}}
	p := parser{doc: doc}
	lineNo := 1
	for sc.Scan() {
		lineNo++
		if err := p.line(sc.Text()); err != nil {
			return nil, fmt.Errorf("read transcript: line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	p.flush()

	return doc, nil
}

type section int

const (
	inHeader section = iota
	inQuestion
	inAnswer
	inReference
	inExplanation
	betweenTurns
)

type parser struct {
	doc     *Document
	sec     section
	cur     *Turn
	buf     []string
	scoreOK bool
}

func (p *parser) line(l string) error {
	if p.sec != inHeader {
		if body, ok := strings.CutPrefix(l, indent); ok {
			return p.body(body)
		}
	}

	if strings.HasPrefix(l, "--- Q") && strings.HasSuffix(l, " ---") {
		p.flush()
		p.cur = &Turn{}
		p.sec = betweenTurns
		return nil
	}

	switch p.sec {
	case inHeader:
		return p.header(l)
	case betweenTurns:
		if l == blockQuestion {
			p.sec = inQuestion
			return nil
		}
	case inQuestion:
		if l == blockAnswer {
			p.cur.Question = p.take()
			p.sec = inAnswer
			return nil
		}
	case inAnswer:
		if l == blockReference {
			p.cur.Answer = p.take()
			p.sec = inReference
			return nil
		}
	case inReference:
		if rest, ok := strings.CutPrefix(l, prefixScore); ok && !p.scoreOK {
			p.cur.ReferenceAnswer = p.take()
			v, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
			if err != nil {
				return fmt.Errorf("invalid score %q", rest)
			}
			p.cur.Score = v
			p.scoreOK = true
			return nil
		}
		if rest, ok := strings.CutPrefix(l, prefixExplain); ok && p.scoreOK {
			p.buf = append(p.buf, rest)
			p.sec = inExplanation
			return nil
		}
	}

	if strings.TrimSpace(l) == "" {
		return nil
	}
	return fmt.Errorf("unexpected line %q", l)
}

// body takes an indented line of the current block.
func (p *parser) body(l string) error {
	switch p.sec {
	case inQuestion, inAnswer, inExplanation:
	case inReference:
		if p.scoreOK {
			return fmt.Errorf("unexpected text after score: %q", l)
		}
	default:
		return fmt.Errorf("unexpected text outside a block: %q", l)
	}
	p.buf = append(p.buf, l)
	return nil
}

func (p *parser) header(l string) error {
	if strings.TrimSpace(l) == "" {
		return nil
	}
	key, value, ok := strings.Cut(l, ": ")
	if !ok {
		return fmt.Errorf("malformed header line %q", l)
	}

	var err error
	switch key {
	case labelName:
		p.doc.Name = value
	case labelEmail:
		p.doc.Email = value
	case labelDomain:
		p.doc.Domain = value
	case labelDate:
		p.doc.Date, err = time.Parse(DateLayout, value)
	case labelAsked:
		p.doc.Asked, err = strconv.Atoi(value)
	case labelAnswered:
		p.doc.Answered, err = strconv.Atoi(value)
	case labelCorrect:
		p.doc.Correct, err = strconv.Atoi(value)
	case labelWrong:
		p.doc.Wrong, err = strconv.Atoi(value)
	case labelFinal:
		p.doc.FinalScore, err = strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
	}
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	return nil
}

// take returns the buffered block and clears it.
func (p *parser) take() string {
	s := strings.Join(p.buf, "\n")
	p.buf = p.buf[:0]
	return s
}

// flush appends the turn being read, if any.
func (p *parser) flush() {
	if p.cur == nil {
		return
	}
	if p.sec == inExplanation {
		p.cur.Explanation = p.take()
	}
	p.doc.Turns = append(p.doc.Turns, *p.cur)
	p.cur = nil
	p.buf = p.buf[:0]
	p.scoreOK = false
}
