package submissions

// SubmitRequest is the body of POST /submit
type SubmitRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// SubmitResponse is returned for a correct solution
type SubmitResponse struct {
	Message       string  `json:"message"`
	ExecutionTime float64 `json:"execution_time"`
	ProblemID     int64   `json:"problem_id"`
}

type LanguagesResponse struct {
	Languages []string `json:"languages"`
}
