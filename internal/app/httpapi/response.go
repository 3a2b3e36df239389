package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/R3E-Network/exercise_tracker/internal/app/domain/exercise"
	"github.com/R3E-Network/exercise_tracker/internal/app/domain/user"
	"github.com/R3E-Network/exercise_tracker/internal/app/services/exercises"
)

type userResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

type userListItem struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

type exerciseResponse struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	Date        string `json:"date"`
	Duration    int    `json:"duration"`
	Description string `json:"description"`
}

type logEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

type logResponse struct {
	ID       string     `json:"_id"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []logEntry `json:"log"`
}

func toUserResponse(u user.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username}
}

func toUserList(list []user.User) []userListItem {
	out := make([]userListItem, 0, len(list))
	for _, u := range list {
		out = append(out, userListItem{Username: u.Username, ID: u.ID})
	}
	return out
}

func toExerciseResponse(u user.User, ex exercise.Exercise) exerciseResponse {
	return exerciseResponse{
		ID:          u.ID,
		Username:    u.Username,
		Date:        ex.Day(),
		Duration:    ex.Duration,
		Description: ex.Description,
	}
}

func toLogResponse(l exercises.Log) logResponse {
	entries := make([]logEntry, 0, l.Count())
	for _, ex := range l.Exercises {
		entries = append(entries, logEntry{
			Description: ex.Description,
			Duration:    ex.Duration,
			Date:        ex.Day(),
		})
	}
	return logResponse{
		ID:       l.User.ID,
		Username: l.User.Username,
		Count:    len(entries),
		Log:      entries,
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
