package dissect

import "testing"

func TestRecordBuilderPreservesInsertionOrder(t *testing.T) {
	rec := NewRecordBuilder().
		Set("c", IntValue(3)).
		Set("a", IntValue(1)).
		Set("b", IntValue(2)).
		Build()

	fields := rec.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	want := []string{"c", "a", "b"}
	for i, n := range want {
		if names[i] != n {
			t.Fatalf("Fields()[%d].Name = %q, want %q", i, names[i], n)
		}
	}
}

func TestRecordBuilderSetOverwritesInPlace(t *testing.T) {
	b := NewRecordBuilder().Set("x", IntValue(1)).Set("y", IntValue(2))
	b.Set("x", IntValue(99))
	rec := b.Build()
	if rec.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (overwrite should not append)", rec.Len())
	}
	v, ok := rec.Get("x")
	if !ok {
		t.Fatal("Get(x) not found")
	}
	if n, _ := v.Int(); n != 99 {
		t.Fatalf("x = %d, want 99", n)
	}
	fields := rec.Fields()
	if fields[0].Name != "x" {
		t.Fatalf("overwrite moved field position: fields[0].Name = %q, want x", fields[0].Name)
	}
}

func TestRecordBuilderGetAndHas(t *testing.T) {
	b := NewRecordBuilder()
	if b.Has("missing") {
		t.Fatal("Has(missing) = true before Set")
	}
	b.Set("Content-Type", TextValue("text/plain"))
	if !b.Has("Content-Type") {
		t.Fatal("Has(Content-Type) = false after Set")
	}
	v, ok := b.Get("Content-Type")
	if !ok {
		t.Fatal("Get(Content-Type) not found")
	}
	if s, _ := v.Text(); s != "text/plain" {
		t.Fatalf("Get(Content-Type) = %q, want text/plain", s)
	}
}

func TestRecordImmutableAfterBuild(t *testing.T) {
	b := NewRecordBuilder().Set("a", IntValue(1))
	rec := b.Build()
	b.Set("b", IntValue(2))
	if rec.Len() != 1 {
		t.Fatalf("mutating the builder after Build() leaked into the Record: Len() = %d, want 1", rec.Len())
	}
}

func TestWithFieldLeavesOriginalUntouched(t *testing.T) {
	rec := NewRecordBuilder().Set("a", IntValue(1)).Build()
	augmented := withField(rec, "b", IntValue(2))
	if rec.Len() != 1 {
		t.Fatalf("withField mutated its input: Len() = %d, want 1", rec.Len())
	}
	if augmented.Len() != 2 {
		t.Fatalf("augmented.Len() = %d, want 2", augmented.Len())
	}
}

func TestWithErrorFieldShape(t *testing.T) {
	rec := NewRecordBuilder().Build()
	errRec := withErrorField(rec, ErrorKindTruncatedPacket, 42)
	v, ok := errRec.Get("__error__")
	if !ok {
		t.Fatal("__error__ field missing")
	}
	nested, ok := v.Record()
	if !ok {
		t.Fatal("__error__ value is not a Record")
	}
	kind, _ := nested.Get("kind")
	if s, _ := kind.Text(); s != "TruncatedPacket" {
		t.Fatalf("kind = %q, want TruncatedPacket", s)
	}
	offset, _ := nested.Get("offset")
	if n, _ := offset.Int(); n != 42 {
		t.Fatalf("offset = %d, want 42", n)
	}
}
