package scripts

import "fmt"

// Result is one output value of a script run
type Result struct {
	Value any
}

// String renders the value in its default textual form
func (r Result) String() string {
	switch v := r.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func toResults(values []any) []Result {
	results := make([]Result, 0, len(values))
	for _, v := range values {
		results = append(results, Result{Value: v})
	}
	return results
}
