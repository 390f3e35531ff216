package mpd

import "fmt"

// knownTagTypes is the set of result keys that are tag-types subject to
// per-session filtering; everything else (file, Time, Pos, Id, directory,
// playlist, ...) is always emitted.
var knownTagTypes = func() map[string]bool {
	m := make(map[string]bool, len(AllTagTypes))
	for _, t := range AllTagTypes {
		m[t] = true
	}
	return m
}()

// FormatLines normalizes a handler Result into the ordered "key: value"
// wire lines, applying tagtype filtering against the session's enabled set.
func FormatLines(result Result, tagTypes map[string]bool) []string {
	var lines []string
	flatten(result, tagTypes, &lines)
	return lines
}

func flatten(result Result, tagTypes map[string]bool, lines *[]string) {
	switch v := result.(type) {
	case nil:
		return
	case string:
		*lines = append(*lines, v)
	case ResultTuple:
		appendTuple(v, tagTypes, lines)
	case ResultDict:
		for _, t := range v.Entries() {
			appendTuple(t, tagTypes, lines)
		}
	case []ResultTuple:
		for _, t := range v {
			appendTuple(t, tagTypes, lines)
		}
	case []Result:
		for _, item := range v {
			flatten(item, tagTypes, lines)
		}
	case []string:
		for _, s := range v {
			*lines = append(*lines, s)
		}
	case []any:
		for _, item := range v {
			flatten(item, tagTypes, lines)
		}
	default:
		*lines = append(*lines, fmt.Sprint(v))
	}
}

func appendTuple(t ResultTuple, tagTypes map[string]bool, lines *[]string) {
	if knownTagTypes[t.Key] {
		if !tagTypes[t.Key] || isEmptyValue(t.Value) {
			return
		}
	}
	*lines = append(*lines, fmt.Sprintf("%s: %v", t.Key, t.Value))
}

func isEmptyValue(v ResultValue) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case int:
		return x == 0
	case int64:
		return x == 0
	case float64:
		return x == 0
	default:
		return false
	}
}
