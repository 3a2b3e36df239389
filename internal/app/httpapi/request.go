package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

const maxBodyBytes = 1 << 20

// flexString accepts a JSON string, number or null and keeps its text, so
// {"duration": 20} and {"duration": "20"} decode the same way.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", data)
		}
		*f = flexString(n.String())
		return nil
	}
}

type createUserRequest struct {
	Username flexString `json:"username"`
}

type addExerciseRequest struct {
	Description flexString `json:"description"`
	Duration    flexString `json:"duration"`
	Date        flexString `json:"date"`
}

// decodeBody fills dst from a JSON body or, for form submissions, from the
// form fields named by formFields (struct field pointer by form key). An
// empty body leaves dst untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, formFields map[string]*flexString) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if mediaType == "multipart/form-data" {
			if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
				return err
			}
		} else if err := r.ParseForm(); err != nil {
			return err
		}
		for key, field := range formFields {
			*field = flexString(r.PostForm.Get(key))
		}
		return nil
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after JSON body")
	}
	return nil
}

func decodeCreateUser(w http.ResponseWriter, r *http.Request) (createUserRequest, error) {
	var req createUserRequest
	err := decodeBody(w, r, &req, map[string]*flexString{"username": &req.Username})
	return req, err
}

func decodeAddExercise(w http.ResponseWriter, r *http.Request) (addExerciseRequest, error) {
	var req addExerciseRequest
	err := decodeBody(w, r, &req, map[string]*flexString{
		"description": &req.Description,
		"duration":    &req.Duration,
		"date":        &req.Date,
	})
	return req, err
}

func queryValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}
