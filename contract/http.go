package contract

// SeedRequest is the body accepted by the Seed function. An empty body
// seeds the default plan.
type SeedRequest struct {
	Plan   string `json:"plan"`
	DryRun bool   `json:"dryRun"`
}

type SeedResponse struct {
	RunID    string   `json:"runId"`
	Users    int      `json:"users"`
	ChatIDs  []string `json:"chatIds"`
	Messages int      `json:"messages"`
	DryRun   bool     `json:"dryRun"`
}
