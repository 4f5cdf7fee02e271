package models

// GoalState is the weekly calorie target and progress computed by the
// backend. ProgressPercent is raw and may exceed 100.
type GoalState struct {
	TargetCalories  *int     `json:"target_calories"`
	CurrentCalories *int     `json:"current_calories"`
	ProgressPercent *float64 `json:"progress_percent"`
}

func (g *GoalState) Target() int {
	if g == nil || g.TargetCalories == nil {
		return 0
	}
	return *g.TargetCalories
}

func (g *GoalState) Current() int {
	if g == nil || g.CurrentCalories == nil {
		return 0
	}
	return *g.CurrentCalories
}

func (g *GoalState) Percent() float64 {
	if g == nil || g.ProgressPercent == nil {
		return 0
	}
	return *g.ProgressPercent
}
