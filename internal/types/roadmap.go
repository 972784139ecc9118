package types

// RoadmapTask is a single task within a weekly milestone.
type RoadmapTask struct {
	Description string `json:"description"`
}

// RoadmapMilestone is one week of the learning roadmap.
type RoadmapMilestone struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Tasks       []RoadmapTask `json:"tasks"`
}

// RoadmapResult is the generated 8-week learning roadmap. The per-milestone
// shape is enforced structurally; the week count is requested by prompt and
// logged when the model deviates, but a 7- or 9-week plan is still returned.
type RoadmapResult struct {
	Milestones   []RoadmapMilestone `json:"milestones"`
	GeneratedAt  string             `json:"generated_at,omitempty"`
	ModelVersion string             `json:"model_version,omitempty"`
}

// ExpectedMilestones is the number of weekly milestones the prompt asks for.
const ExpectedMilestones = 8
