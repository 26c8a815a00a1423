package property

// normalize returns a copy of v in the canonical representation for t.
// Values that do not fit t are deep-copied unchanged.
func normalize(t Type, v any) any {
	switch t {
	case TypeNumber:
		if f, ok := toFloat(v); ok {
			return f
		}
	case TypeNumberArray:
		if fs, ok := toFloats(v); ok {
			return fs
		}
	}
	return cloneValue(v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func toFloats(v any) ([]float64, bool) {
	switch arr := v.(type) {
	case []float64:
		return append(make([]float64, 0, len(arr)), arr...), true
	case []int:
		out := make([]float64, len(arr))
		for i, n := range arr {
			out[i] = float64(n)
		}
		return out, true
	case []any:
		out := make([]float64, len(arr))
		for i, item := range arr {
			f, ok := toFloat(item)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	default:
		return nil, false
	}
}

// cloneValue deep-copies the container types that decoders produce.
func cloneValue(v any) any {
	switch val := v.(type) {
	case []float64:
		return append([]float64(nil), val...)
	case []string:
		return append([]string(nil), val...)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
