package request

import "encoding/json"

type CreateSurveyRequest struct {
	Title       string          `json:"title"` // @required
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Questions   json.RawMessage `json:"questions"`
	Anonymous   bool            `json:"anonymous"`
}

type SubmitResponseRequest struct {
	Answers    json.RawMessage `json:"answers"` // @required
	Department string          `json:"department"`
	Tenure     string          `json:"tenure"`
}
