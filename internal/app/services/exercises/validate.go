package exercises

import (
	"strconv"
	"strings"

	"github.com/R3E-Network/exercise_tracker/internal/app/domain/exercise"
	"github.com/R3E-Network/exercise_tracker/internal/errors"
)

func parseAddInput(in AddInput) (exercise.Exercise, error) {
	rawDuration := strings.TrimSpace(in.Duration)
	if strings.TrimSpace(in.Description) == "" || rawDuration == "" {
		return exercise.Exercise{}, errors.BadRequest("Description and duration are required")
	}

	duration, err := strconv.Atoi(rawDuration)
	if err != nil {
		return exercise.Exercise{}, errors.BadRequest("Duration must be a number")
	}
	if duration <= 0 {
		return exercise.Exercise{}, errors.BadRequest("Duration must be a positive number")
	}

	ex := exercise.Exercise{Description: in.Description, Duration: duration}
	if strings.TrimSpace(in.Date) != "" {
		date, ok := exercise.ParseDate(in.Date)
		if !ok {
			return exercise.Exercise{}, errors.BadRequest("Invalid date format")
		}
		ex.Date = date
	}
	return ex, nil
}

func parseQuery(params LogParams) (exercise.Query, error) {
	var q exercise.Query

	if strings.TrimSpace(params.From) != "" {
		from, ok := exercise.ParseDate(params.From)
		if !ok {
			return exercise.Query{}, errors.BadRequest(`Invalid "from" date format`)
		}
		start := exercise.StartOfDay(from)
		q.From = &start
	}

	if strings.TrimSpace(params.To) != "" {
		to, ok := exercise.ParseDate(params.To)
		if !ok {
			return exercise.Query{}, errors.BadRequest(`Invalid "to" date format`)
		}
		end := exercise.EndOfDay(to)
		q.To = &end
	}

	if strings.TrimSpace(params.Limit) != "" {
		limit, err := strconv.Atoi(strings.TrimSpace(params.Limit))
		if err != nil || limit <= 0 {
			return exercise.Query{}, errors.BadRequest("Limit must be a positive number")
		}
		q.Limit = limit
	}

	return q, nil
}
