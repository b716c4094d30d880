package request

import "encoding/json"

type CreateDraftRequest struct {
	SurveyID string          `json:"survey_id"`
	Kind     string          `json:"kind"`
	Payload  json.RawMessage `json:"payload"`
}

// SaveDraftContentRequest carries the version the client believes is
// current; the save is accepted only when it matches the stored version.
type SaveDraftContentRequest struct {
	Version int64           `json:"version"` // @required
	Payload json.RawMessage `json:"payload"` // @required
}
