// CLAUDE:SUMMARY Repair ladder for malformed structured model responses: fence strip, backslash escape, truncation heal, lenient parse.
package papersec

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrResponseMalformed reports a structured model response that survived no
// stage of the repair ladder.
var ErrResponseMalformed = errors.New("malformed model response")

// decodeSectionPayload parses a structured section response, applying an
// ordered chain of fallible repairs:
//
//  1. strip a markdown code fence around the payload
//  2. escape stray backslashes (common in embedded math notation)
//  3. plain JSON parse
//  4. on an unterminated payload, close the open string and object and retry
//  5. last resort: lenient parse accepting single-quoted literals
//
// Each stage is independent; the original payload is never mutated in place.
func decodeSectionPayload(raw string) (map[string]string, error) {
	payload := stripCodeFence(strings.TrimSpace(raw))
	payload = escapeStrayBackslashes(payload)

	var sections map[string]string
	err := json.Unmarshal([]byte(payload), &sections)
	if err == nil {
		return sections, nil
	}

	if isTruncatedJSON(err) {
		if healed, hErr := healTruncated(payload); hErr == nil {
			return healed, nil
		}
	}

	if lenient, lErr := decodeLenient(payload); lErr == nil {
		return lenient, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrResponseMalformed, err)
}

// stripCodeFence removes a ```json ... ``` or ``` ... ``` wrapper.
func stripCodeFence(s string) string {
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	if strings.HasSuffix(strings.TrimSpace(s), "```") {
		s = strings.TrimSpace(s)
		s = s[:len(s)-len("```")]
	}
	return strings.TrimSpace(s)
}

// escapeStrayBackslashes doubles any backslash that does not start a valid
// JSON escape sequence. Model output embedding LaTeX ("\alpha", "\frac")
// breaks strict parsing otherwise. Already-escaped pairs are preserved.
func escapeStrayBackslashes(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		if i+1 < len(s) && strings.IndexByte(`"\/bfnrtu`, s[i+1]) >= 0 {
			// Valid escape (or the first of a doubled pair): keep both bytes.
			sb.WriteByte(c)
			sb.WriteByte(s[i+1])
			i++
			continue
		}
		sb.WriteString(`\\`)
	}
	return sb.String()
}

// isTruncatedJSON reports whether the parse error looks like an output cut
// off mid-string (the model hit its token cap).
func isTruncatedJSON(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "unexpected end of JSON input")
}

// healTruncated appends a closing quote and brace to a truncated payload
// and re-parses. The last section's content may be incomplete; a partial
// section beats a lost one.
func healTruncated(payload string) (map[string]string, error) {
	fixed := strings.TrimRight(payload, " \t\r\n")
	if !strings.HasSuffix(fixed, `"`) {
		fixed += `"`
	}
	if !strings.HasSuffix(fixed, "}") {
		fixed += "\n}"
	}
	var sections map[string]string
	if err := json.Unmarshal([]byte(fixed), &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

// decodeLenient accepts single-quoted object literals by rewriting them to
// JSON string syntax and re-parsing. Only quoting is relaxed; structure is
// not.
func decodeLenient(payload string) (map[string]string, error) {
	var sb strings.Builder
	sb.Grow(len(payload))

	const (
		outside = iota
		inDouble
		inSingle
	)
	state := outside

	for i := 0; i < len(payload); i++ {
		c := payload[i]
		switch state {
		case outside:
			switch c {
			case '\'':
				state = inSingle
				sb.WriteByte('"')
			case '"':
				state = inDouble
				sb.WriteByte(c)
			default:
				sb.WriteByte(c)
			}
		case inDouble:
			if c == '\\' && i+1 < len(payload) {
				sb.WriteByte(c)
				sb.WriteByte(payload[i+1])
				i++
				continue
			}
			if c == '"' {
				state = outside
			}
			sb.WriteByte(c)
		case inSingle:
			switch {
			case c == '\\' && i+1 < len(payload) && payload[i+1] == '\'':
				sb.WriteByte('\'')
				i++
			case c == '\\' && i+1 < len(payload):
				sb.WriteByte(c)
				sb.WriteByte(payload[i+1])
				i++
			case c == '\'':
				state = outside
				sb.WriteByte('"')
			case c == '"':
				sb.WriteString(`\"`)
			default:
				sb.WriteByte(c)
			}
		}
	}

	var sections map[string]string
	if err := json.Unmarshal([]byte(sb.String()), &sections); err != nil {
		return nil, err
	}
	return sections, nil
}
