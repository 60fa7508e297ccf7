package model

type ErrorResponse struct {
	Error string `json:"error"`
}

type PingResponse struct {
	Message string `json:"message"`
}

type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

// HealthResponse - GET /health 응답
type HealthResponse struct {
	APIStatus            string   `json:"api_status"`
	LLMStatus            string   `json:"llm_status"`
	LLMBackend           string   `json:"llm_backend"`
	LLMModel             string   `json:"llm_model"`
	LLMEndpoint          string   `json:"llm_endpoint"`
	LLMTemperature       *float64 `json:"llm_temperature,omitempty"`
	SampleResponseLength int      `json:"sample_response_length"`
	Note                 string   `json:"note,omitempty"`
	Error                string   `json:"error,omitempty"`
	Timestamp            string   `json:"timestamp"`
}

type SampleIncidentResponse struct {
	Status      string         `json:"status"`
	Data        SampleIncident `json:"data"`
	Description string         `json:"description"`
}
