package arrskema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/arrskema/i18n"
)

// MakeIssue builds an Issue for code at p and renders its message through the
// current i18n Translator. params may be nil.
func MakeIssue(code string, params map[string]any, p PathInfo, _ Options) Issue {
	return Issue{
		Code:    code,
		Path:    p.Path,
		Key:     p.Key,
		Message: i18n.T(code, messageData(p, params)),
		Params:  params,
	}
}

// Fail is shorthand for a failed Result carrying a single issue.
func Fail(v any, code string, params map[string]any, st State, opt Options) Result {
	return Result{Value: v, Errors: Issues{MakeIssue(code, params, st.PathInfo(), opt)}}
}

// messageData flattens params into template data for the Translator.
func messageData(p PathInfo, params map[string]any) map[string]string {
	data := make(map[string]string, len(params)+1)
	switch k := p.Key.(type) {
	case nil:
		data["key"] = "value"
	case int:
		data["key"] = strconv.Itoa(k)
	default:
		data["key"] = fmt.Sprint(k)
	}
	for k, v := range params {
		switch t := v.(type) {
		case Issues:
			msgs := make([]string, len(t))
			for i, it := range t {
				msgs[i] = it.Message
			}
			data[k] = strings.Join(msgs, "; ")
		case []string:
			data[k] = strings.Join(t, ", ")
		case int:
			data[k] = strconv.Itoa(t)
		case string:
			data[k] = t
		default:
			data[k] = fmt.Sprint(t)
		}
	}
	return data
}
