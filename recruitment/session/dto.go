package session

// DispatchRequest - one or more actions applied in order
type DispatchRequest struct {
	Actions []Action `json:"actions" validate:"required,min=1,max=50,dive"`
}

// StateResponse - the session state and the job browser URL query it implies
type StateResponse struct {
	State State  `json:"state"`
	Query string `json:"query"`
}

// ToResponse pairs the state with its job browser query
func (s State) ToResponse() StateResponse {
	return StateResponse{State: s, Query: s.JobsQuery()}
}
