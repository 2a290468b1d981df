package dissect

// Field is one named entry of an info record.
type Field struct {
	Name  string
	Value Value
}

// Record is an ordered, named field collection representing one decoded
// protocol header. Field insertion order is preserved and is part of the
// contract: iterating Fields() returns them in the order the decoder wrote
// them. Records are immutable once built (see RecordBuilder).
type Record struct {
	fields []Field
	index  map[string]int
}

// Fields returns the record's fields in emission order. The returned slice
// is owned by the caller; callers must not mutate the Record through it
// (it is a fresh copy).
func (r *Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Get looks up a field by name.
func (r *Record) Get(name string) (Value, bool) {
	i, ok := r.index[name]
	if !ok {
		return Value{}, false
	}
	return r.fields[i].Value, true
}

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.fields) }

// RecordBuilder accumulates fields in emission order for a single decoder
// invocation, then seals them into an immutable Record. No mutable instance
// fields survive past the call that produced the Record.
type RecordBuilder struct {
	fields []Field
	index  map[string]int
}

// NewRecordBuilder starts an empty builder.
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{index: make(map[string]int)}
}

// Set appends name/value, or overwrites the value in place if name was
// already set (decoders call Set once per declared schema field, in the
// order they want it to appear; re-Set is for decoders that compute a
// field's final value in a later step).
func (b *RecordBuilder) Set(name string, v Value) *RecordBuilder {
	if i, ok := b.index[name]; ok {
		b.fields[i].Value = v
		return b
	}
	b.index[name] = len(b.fields)
	b.fields = append(b.fields, Field{Name: name, Value: v})
	return b
}

// Has reports whether name has been Set already.
func (b *RecordBuilder) Has(name string) bool {
	_, ok := b.index[name]
	return ok
}

// Get looks up a field already Set on the builder, for decoders that need
// to read back a value (e.g. HTTP checking for a prior Content-Type field)
// before finishing the record.
func (b *RecordBuilder) Get(name string) (Value, bool) {
	i, ok := b.index[name]
	if !ok {
		return Value{}, false
	}
	return b.fields[i].Value, true
}

// Build seals the accumulated fields into an immutable Record.
func (b *RecordBuilder) Build() *Record {
	fields := make([]Field, len(b.fields))
	copy(fields, b.fields)
	index := make(map[string]int, len(b.index))
	for k, v := range b.index {
		index[k] = v
	}
	return &Record{fields: fields, index: index}
}

// withField returns a new Record with name/value appended (or overwritten in
// place if present), leaving r untouched. Used by the dispatch engine to
// merge a child's decoded record or an __error__ marker onto a parent
// without reopening the decoder's own builder.
func withField(r *Record, name string, v Value) *Record {
	b := NewRecordBuilder()
	for _, f := range r.fields {
		b.Set(f.Name, f.Value)
	}
	b.Set(name, v)
	return b.Build()
}

// errorRecordValue builds the nested record stored under "__error__": the
// error kind's name and the byte offset at which it occurred.
func errorRecordValue(kind ErrorKind, offset int) Value {
	rec := NewRecordBuilder().
		Set("kind", TextValue(kind.String())).
		Set("offset", IntValue(uint64(offset))).
		Build()
	return RecordValue(rec)
}

func withErrorField(r *Record, kind ErrorKind, offset int) *Record {
	return withField(r, "__error__", errorRecordValue(kind, offset))
}
