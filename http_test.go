package dissect

import "testing"

func TestHTTPReservedHeaderNameCollisionRenamed(t *testing.T) {
	data := []byte("GET / HTTP/1.1\r\nrequest: custom-value\r\n\r\n")
	frame, err := DecodeFrame(data, Descriptor{ShortName: "HTTP", Layer: LayerApplication, DecoderID: ProtoHTTP1})
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if _, collides := frame.Info.Get("request"); !collides {
		t.Fatal("the structured 'request' field should still be present")
	}
	renamed, ok := frame.Info.Get("request_field")
	if !ok {
		t.Fatal("expected the literal header field named 'request' to be renamed to request_field")
	}
	if s, _ := renamed.Text(); s != "custom-value" {
		t.Fatalf("request_field = %q, want custom-value", s)
	}
}

func TestHTTPReservedNameCaseInsensitiveToggle(t *testing.T) {
	orig := HTTPReservedNameCaseInsensitive
	defer func() { HTTPReservedNameCaseInsensitive = orig }()

	data := []byte("GET / HTTP/1.1\r\nRequest: custom-value\r\n\r\n")

	HTTPReservedNameCaseInsensitive = false
	frame, err := DecodeFrame(data, Descriptor{ShortName: "HTTP", Layer: LayerApplication, DecoderID: ProtoHTTP1})
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if _, ok := frame.Info.Get("Request"); !ok {
		t.Fatal("case-sensitive mode should leave 'Request' (capital R) unrenamed")
	}

	HTTPReservedNameCaseInsensitive = true
	frame, err = DecodeFrame(data, Descriptor{ShortName: "HTTP", Layer: LayerApplication, DecoderID: ProtoHTTP1})
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if _, ok := frame.Info.Get("Request_field"); !ok {
		t.Fatal("case-insensitive mode should rename 'Request' too")
	}
}

func TestHTTPEmptyBodyIsNull(t *testing.T) {
	data := []byte("GET / HTTP/1.1\r\n\r\n")
	frame, err := DecodeFrame(data, Descriptor{ShortName: "HTTP", Layer: LayerApplication, DecoderID: ProtoHTTP1})
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	body, _ := frame.Info.Get("body")
	if body.Kind() != KindNull {
		t.Fatalf("body.Kind() = %v, want KindNull", body.Kind())
	}
}

func TestHTTPBodyDecodedAsText(t *testing.T) {
	data := []byte("HTTP/1.1 200 OK\r\nContent-Type: text/plain; charset=utf-8\r\n\r\nhello world")
	frame, err := DecodeFrame(data, Descriptor{ShortName: "HTTP", Layer: LayerApplication, DecoderID: ProtoHTTP1})
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	body, _ := frame.Info.Get("body")
	s, ok := body.Text()
	if !ok {
		t.Fatalf("body.Kind() = %v, want KindText", body.Kind())
	}
	if s != "hello world" {
		t.Fatalf("body = %q, want %q", s, "hello world")
	}
}

func TestHTTPMissingHeaderBodySeparatorIsMalformed(t *testing.T) {
	data := []byte("GET / HTTP/1.1\r\nHost: example.com")
	_, err := DecodeFrame(data, Descriptor{ShortName: "HTTP", Layer: LayerApplication, DecoderID: ProtoHTTP1})
	if err == nil {
		t.Fatal("expected a top-level error: no \\r\\n\\r\\n separator")
	}
	decErr, ok := err.(*DecodeError)
	if !ok {
		t.Fatalf("error type = %T, want *DecodeError", err)
	}
	if decErr.Kind != ErrorKindMalformedHeader {
		t.Fatalf("Kind = %v, want MalformedHeader", decErr.Kind)
	}
}
