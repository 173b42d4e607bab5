package ontograph

// Kind classifies the runtime shape of a decoded document value. The document
// package normalizes every decoded value to exactly one of these kinds, so
// validators and the loader never see encoder-specific types.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindMapping
	KindUnknown
)

// KindOf reports the Kind of a normalized document value. Plain Go int and
// float widths are folded into KindInt/KindFloat so hand-built documents
// behave like decoded ones; values outside the set report KindUnknown.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case int, int32, int64:
		return KindInt
	case float32, float64:
		return KindFloat
	case string:
		return KindString
	case []any:
		return KindList
	case map[string]any:
		return KindMapping
	default:
		return KindUnknown
	}
}

// String returns the token used for the kind in meta-documents and messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}
