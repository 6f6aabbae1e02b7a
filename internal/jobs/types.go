package jobs

const TaskGeneratePlan = "plan:generate"

type GeneratePlanPayload struct {
	RequestID string `json:"request_id"`
	RiderID   string `json:"rider_id"`
	EventID   string `json:"event_id"`
	Voice     string `json:"voice,omitempty"`
}
