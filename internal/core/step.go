package core

// Info carries auxiliary per-step data next to the observation.
type Info struct {
	Snake      []Point `json:"snake"` // head first
	Length     int     `json:"length"`
	Food       Point   `json:"food"`
	HasFood    bool    `json:"has_food"`
	Steps      int     `json:"steps"`
	FoodEaten  int     `json:"food_eaten"`
	DeathCause string  `json:"death_cause"`
	Truncated  bool    `json:"truncated,omitempty"` // Step limit reached while alive
}

// StepResult is returned by an environment after each step.
type StepResult struct {
	Observation Observation
	Reward      float64
	Done        bool
	Info        Info
}
