package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/crucial707/notes-api/cmd/cli/config"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	var out struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if json.Unmarshal([]byte(e.Body), &out) == nil && out.Error != "" {
		msg := out.Error
		for k, v := range out.Fields {
			msg += fmt.Sprintf("\n  %s: %s", k, v)
		}
		return fmt.Sprintf("status %d: %s", e.Status, msg)
	}
	return fmt.Sprintf("status %d: %s", e.Status, strings.TrimSpace(e.Body))
}

// Call sends payload as JSON (when non-nil) and decodes a 2xx response into out (when non-nil).
func Call(client *http.Client, method, path, token string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, config.APIURL()+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{Status: resp.StatusCode, Body: string(respBody)}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return err
		}
	}

	return nil
}

// CallAuthed is Call with the stored access token. On a 401 it exchanges the
// refresh token for a new access token once, saves it and retries.
func CallAuthed(client *http.Client, method, path string, payload interface{}, out interface{}) error {
	tokens, err := config.LoadTokens()
	if err != nil {
		return err
	}

	err = Call(client, method, path, tokens.Access, payload, out)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized || tokens.Refresh == "" {
		return err
	}

	var refreshed struct {
		Access string `json:"access"`
	}
	if rerr := Call(client, http.MethodPost, "/api/token/refresh/", "", map[string]string{"refresh": tokens.Refresh}, &refreshed); rerr != nil || refreshed.Access == "" {
		return fmt.Errorf("session expired: run `notes login` again")
	}
	tokens.Access = refreshed.Access
	if serr := config.SaveTokens(tokens); serr != nil {
		return serr
	}

	return Call(client, method, path, tokens.Access, payload, out)
}
