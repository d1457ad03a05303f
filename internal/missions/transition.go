package missions

import "github.com/gangbro/missionboard/internal/model"

var transitions = map[model.MissionStatus][]model.MissionStatus{
	model.StatusOpen:       {model.StatusInProgress},
	model.StatusFailed:     {model.StatusInProgress},
	model.StatusInProgress: {model.StatusCompleted, model.StatusFailed},
}

// TransitionAllowed reports whether the lifecycle has an edge from -> to.
func TransitionAllowed(from, to model.MissionStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}

	return false
}
