package dissect

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// HTTPReservedNameCaseInsensitive controls whether the "request"/"response"
// header-field collision rename matches case-insensitively. Defaults to an
// exact lowercase match. It is process-wide configuration, set once before
// decoding begins and never mutated mid-decode, the same lifecycle the
// protocol registries follow.
var HTTPReservedNameCaseInsensitive = false

var (
	reHTTPMethod  = regexp.MustCompile(`^(GET|HEAD|POST|PUT|DELETE|CONNECT|OPTIONS|TRACE)$`)
	reHTTPVersion = regexp.MustCompile(`^HTTP/(\d\.\d)$`)
	reHTTPStatus  = regexp.MustCompile(`^\d{3}$`)
)

func init() {
	registerDecoder(ProtoHTTP1, DecoderDescriptor{
		ShortName:       "HTTP",
		LongName:        "Hypertext Transfer Protocol",
		Layer:           LayerApplication,
		MinHeaderLength: 4, // the \r\n\r\n separator itself
		Decode:          decodeHTTP1,
	})
}

func decodeHTTP1(cur *Cursor) (*Record, NextHint, string, error) {
	payload := cur.ReadRemaining()

	sep := []byte("\r\n\r\n")
	idx := bytes.Index(payload, sep)
	if idx < 0 {
		return nil, NextHint{}, "", wrapf(ErrorKindMalformedHeader, "HTTP: no header/body separator found")
	}
	headerBlock := payload[:idx]
	body := payload[idx+len(sep):]

	lineSep := []byte("\r\n")
	startIdx := bytes.Index(headerBlock, lineSep)
	var startLine string
	var fieldBlock []byte
	if startIdx < 0 {
		startLine = string(headerBlock)
	} else {
		startLine = string(headerBlock[:startIdx])
		fieldBlock = headerBlock[startIdx+len(lineSep):]
	}

	parts := strings.Fields(startLine)
	if len(parts) != 3 {
		return nil, NextHint{}, "", wrapf(ErrorKindMalformedHeader, "HTTP: start line %q does not split into 3 fields", startLine)
	}
	a, b, c := parts[0], parts[1], parts[2]

	builder := NewRecordBuilder()

	switch {
	case reHTTPMethod.MatchString(a) && reHTTPVersion.MatchString(c):
		version := reHTTPVersion.FindStringSubmatch(c)[1]
		requestRec := NewRecordBuilder().
			Set("method", TextValue(a)).
			Set("target", TextValue(b)).
			Set("version", TextValue(version)).
			Build()
		builder.Set("receipt", TextValue("request")).Set("request", RecordValue(requestRec))

	case reHTTPVersion.MatchString(a) && reHTTPStatus.MatchString(b):
		version := reHTTPVersion.FindStringSubmatch(a)[1]
		status, _ := strconv.Atoi(b)
		responseRec := NewRecordBuilder().
			Set("version", TextValue(version)).
			Set("status", IntValue(uint64(status))).
			Set("phrase", TextValue(c)).
			Build()
		builder.Set("receipt", TextValue("response")).Set("response", RecordValue(responseRec))

	default:
		return nil, NextHint{}, "", wrapf(ErrorKindMalformedHeader, "HTTP: start line %q is neither a request nor a status line", startLine)
	}

	if err := readHTTPHeaderFields(builder, fieldBlock); err != nil {
		return nil, NextHint{}, "", err
	}

	builder.Set("body", httpBodyValue(builder, body))

	return builder.Build(), TerminalHint(), "", nil
}

// readHTTPHeaderFields parses each \r\n-delimited "name: value" field,
// renaming a literal collision with the reserved names "request"/"response"
// and folding repeats into an ordered Sequence.
func readHTTPHeaderFields(builder *RecordBuilder, fieldBlock []byte) error {
	if len(fieldBlock) == 0 {
		return nil
	}
	for _, raw := range bytes.Split(fieldBlock, []byte("\r\n")) {
		if len(raw) == 0 {
			continue
		}
		idx := bytes.IndexByte(raw, ':')
		if idx < 0 {
			return wrapf(ErrorKindMalformedHeader, "HTTP: header field %q has no ':'", raw)
		}
		key := strings.TrimSpace(string(raw[:idx]))
		value := strings.TrimSpace(string(raw[idx+1:]))
		key = renameReservedHeaderName(key)

		if existing, ok := builder.Get(key); ok {
			if seq, isSeq := existing.Sequence(); isSeq {
				builder.Set(key, SequenceValue(append(seq, TextValue(value))))
			} else {
				builder.Set(key, SequenceValue([]Value{existing, TextValue(value)}))
			}
		} else {
			builder.Set(key, TextValue(value))
		}
	}
	return nil
}

func renameReservedHeaderName(key string) string {
	match := key == "request" || key == "response"
	if HTTPReservedNameCaseInsensitive {
		lower := strings.ToLower(key)
		match = lower == "request" || lower == "response"
	}
	if !match {
		return key
	}
	return key + "_field"
}

// httpBodyValue runs an encoding-detection pass over body using
// golang.org/x/net/html/charset, the ecosystem's sniffing entry point, and
// decodes into text when a charset is identified.
func httpBodyValue(builder *RecordBuilder, body []byte) Value {
	if len(body) == 0 {
		return Null()
	}

	contentType := ""
	if ct, ok := builder.Get("Content-Type"); ok {
		if s, isText := ct.Text(); isText {
			contentType = s
		}
	}

	enc, name, _ := charset.DetermineEncoding(body, contentType)
	if name == "" {
		return Null()
	}
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return BytesValue(body)
	}
	return TextValue(string(decoded))
}
