package request

type CreateMicroclimateRequest struct {
	Question string `json:"question"` // @required
}

type ReactMicroclimateRequest struct {
	Reaction string `json:"reaction"` // @required
}
