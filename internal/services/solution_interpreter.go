package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"tripgems/internal/models/tour_models"
	"tripgems/pkg/utils"
)

// Interpretation is the optimizer solution mapped back onto the
// candidate list.
type Interpretation struct {
	Steps        []tour_models.ItineraryStep `json:"steps"`
	VisitedCount int                         `json:"visited_count"`
	// Dropped holds candidate indices that were requested but never scheduled.
	Dropped  []int    `json:"dropped,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

type SolutionInterpreterInterface interface {
	Interpret(resp *OptimizationResponse, locations tour_models.VisitCandidateList, index JobIndex) Interpretation
}

type SolutionInterpreter struct{}

func NewSolutionInterpreter() SolutionInterpreterInterface {
	return &SolutionInterpreter{}
}

func (s *SolutionInterpreter) Interpret(resp *OptimizationResponse, locations tour_models.VisitCandidateList, index JobIndex) Interpretation {
	var out Interpretation
	if resp == nil {
		return out
	}

	visited := make(map[int]struct{})
	for _, route := range resp.Routes {
		for _, step := range route.Steps {
			typ := tour_models.StepType(step.Type)
			if typ != tour_models.StepStart && typ != tour_models.StepJob && typ != tour_models.StepEnd {
				continue
			}

			locIdx := 0
			if typ == tour_models.StepJob {
				if idx, ok := index[step.ID]; ok {
					locIdx = idx
					visited[locIdx] = struct{}{}
				} else {
					log.Warn().Int("job_id", step.ID).Msg("optimizer returned an unknown job id")
				}
			}

			st := tour_models.ItineraryStep{
				Type:          typ,
				LocationIndex: locIdx,
				Arrival:       step.Arrival,
				ArrivalClock:  utils.SecondsToClock(step.Arrival),
				Duration:      step.Duration,
			}
			if locIdx >= 0 && locIdx < len(locations) {
				loc := locations[locIdx]
				st.Name = loc.Name
				st.Category = loc.Category
				st.Lat = loc.Lat
				st.Lng = loc.Lng
			}
			out.Steps = append(out.Steps, st)
		}
	}
	out.VisitedCount = len(visited)

	jobIDs := make([]int, 0, len(index))
	for jobID := range index {
		jobIDs = append(jobIDs, jobID)
	}
	sort.Ints(jobIDs)

	for _, jobID := range jobIDs {
		locIdx := index[jobID]
		if _, ok := visited[locIdx]; ok {
			continue
		}
		out.Dropped = append(out.Dropped, locIdx)
		name := ""
		if locIdx < len(locations) {
			name = locations[locIdx].Name
		}
		log.Warn().Int("job_id", jobID).Str("name", name).Msg("optimizer dropped a requested stop")
		out.Warnings = append(out.Warnings, fmt.Sprintf("stop %q (job %d) was not scheduled by the optimizer", name, jobID))
	}

	return out
}

// Summary renders the itinerary as a single readable line followed by the
// visited count.
func Summary(in Interpretation) string {
	var b strings.Builder
	b.WriteString("Optimized Itinerary:\n")
	for _, st := range in.Steps {
		switch st.Type {
		case tour_models.StepStart:
			fmt.Fprintf(&b, "%s (Start Time: %s) -> ", st.Name, st.ArrivalClock)
		case tour_models.StepJob:
			fmt.Fprintf(&b, "%s (Arrival: %s) -> ", st.Name, st.ArrivalClock)
		case tour_models.StepEnd:
			fmt.Fprintf(&b, "%s (End Time: %s)", st.Name, st.ArrivalClock)
		}
	}
	fmt.Fprintf(&b, "\nTotal number of locations visited: %d", in.VisitedCount)
	return b.String()
}
