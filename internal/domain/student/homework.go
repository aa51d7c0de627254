// internal/domain/student/homework.go
package student

import (
	"encoding/json"
)

// HomeworkState is the homework outcome of a lesson.
// On the wire it is a boolean or one of the literal strings "No Homework" / "Not Completed".
type HomeworkState string

const (
	HomeworkUnset        HomeworkState = ""
	HomeworkDone         HomeworkState = "done"
	HomeworkNotDone      HomeworkState = "not_done"
	HomeworkNone         HomeworkState = "No Homework"
	HomeworkNotCompleted HomeworkState = "Not Completed"
	HomeworkOther        HomeworkState = "other" // any unrecognised value
)

// ParseHomework maps a decoded JSON value onto a HomeworkState.
func ParseHomework(v interface{}) HomeworkState {
	switch x := v.(type) {
	case nil:
		return HomeworkUnset
	case bool:
		if x {
			return HomeworkDone
		}
		return HomeworkNotDone
	case string:
		switch HomeworkState(x) {
		case HomeworkNone, HomeworkNotCompleted:
			return HomeworkState(x)
		}
		return HomeworkOther
	default:
		return HomeworkOther
	}
}

func (h *HomeworkState) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*h = ParseHomework(v)
	return nil
}

func (h HomeworkState) MarshalJSON() ([]byte, error) {
	switch h {
	case HomeworkDone:
		return []byte("true"), nil
	case HomeworkNotDone:
		return []byte("false"), nil
	case HomeworkUnset:
		return []byte("null"), nil
	}
	return json.Marshal(string(h))
}

// Label is the text shown to the guardian for an attended lesson.
func (h HomeworkState) Label() string {
	switch h {
	case HomeworkDone:
		return "Done"
	case HomeworkNone, HomeworkNotCompleted:
		return string(h)
	default:
		return "Not Done"
	}
}
