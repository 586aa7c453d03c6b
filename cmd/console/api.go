package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/story-commands/pkg/chat"
	"github.com/jwebster45206/story-commands/pkg/session"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// CharacterSummary matches one entry of GET /v1/characters
type CharacterSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Class    string `json:"class,omitempty"`
	Level    int    `json:"level,omitempty"`
	Pronouns string `json:"pronouns,omitempty"`
}

// DisplayName renders "Name (Level N Class)" for the picker.
func (c CharacterSummary) DisplayName() string {
	switch {
	case c.Class != "" && c.Level > 0:
		return fmt.Sprintf("%s (Level %d %s)", c.Name, c.Level, c.Class)
	case c.Class != "":
		return fmt.Sprintf("%s (%s)", c.Name, c.Class)
	default:
		return c.Name
	}
}

// CreateSessionRequest matches the API request structure
type CreateSessionRequest struct {
	CharacterID string `json:"character_id,omitempty"`
}

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// doJSON sends body (if any) and decodes a response with the wanted status into out.
func doJSON(client *http.Client, method, url string, body interface{}, want int, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != want {
		var errorResp ErrorResponse
		if err := json.Unmarshal(respBody, &errorResp); err != nil || errorResp.Error == "" {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
		}
		return fmt.Errorf("%s", errorResp.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func listCharacters(client *http.Client, baseURL string) ([]CharacterSummary, error) {
	var list []CharacterSummary
	if err := doJSON(client, http.MethodGet, baseURL+"/v1/characters", nil, http.StatusOK, &list); err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return list, nil
}

func createSession(client *http.Client, baseURL, characterID string) (*session.Session, error) {
	var s session.Session
	req := CreateSessionRequest{CharacterID: characterID}
	if err := doJSON(client, http.MethodPost, baseURL+"/v1/sessions", req, http.StatusCreated, &s); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &s, nil
}

func getSession(client *http.Client, baseURL string, sessionID uuid.UUID) (*session.Session, error) {
	var s session.Session
	url := fmt.Sprintf("%s/v1/sessions/%s", baseURL, sessionID)
	if err := doJSON(client, http.MethodGet, url, nil, http.StatusOK, &s); err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &s, nil
}

func sendCommand(client *http.Client, baseURL string, sessionID uuid.UUID, message string) (*chat.CommandResponse, error) {
	var resp chat.CommandResponse
	req := chat.CommandRequest{SessionID: sessionID, Message: message}
	if err := doJSON(client, http.MethodPost, baseURL+"/v1/commands", req, http.StatusOK, &resp); err != nil {
		return nil, fmt.Errorf("command failed: %w", err)
	}
	return &resp, nil
}

func quickRoll(client *http.Client, baseURL string, sessionID uuid.UUID, sides int) (*chat.RollResponse, error) {
	var resp chat.RollResponse
	url := fmt.Sprintf("%s/v1/rolls/quick/%d?session_id=%s", baseURL, sides, sessionID)
	if err := doJSON(client, http.MethodPost, url, nil, http.StatusOK, &resp); err != nil {
		return nil, fmt.Errorf("roll failed: %w", err)
	}
	return &resp, nil
}

// SSEEvent represents an event from the SSE stream
type SSEEvent struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

// listenToSSE connects to the SSE endpoint and streams events to a channel
func listenToSSE(ctx context.Context, client *http.Client, baseURL string, sessionID uuid.UUID, eventChan chan<- SSEEvent) error {
	url := fmt.Sprintf("%s/v1/events/sessions/%s", baseURL, sessionID.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to SSE: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("SSE connection failed with status %d: %s", resp.StatusCode, string(body))
	}

	return readSSE(ctx, resp.Body, eventChan)
}

// readSSE parses "event:"/"data:" frames. Comment lines are skipped.
func readSSE(ctx context.Context, r io.Reader, eventChan chan<- SSEEvent) error {
	scanner := bufio.NewScanner(r)
	var current SSEEvent

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Text()
		switch {
		case line == "":
			if current.Type != "" {
				select {
				case eventChan <- current:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			current = SSEEvent{}
		case strings.HasPrefix(line, ":"):
			// keepalive
		case strings.HasPrefix(line, "event: "):
			current.Type = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			var payload map[string]interface{}
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &payload); err == nil {
				// Session events wrap their fields in "data"; "connected" does not.
				if inner, ok := payload["data"].(map[string]interface{}); ok {
					current.Data = inner
				} else {
					current.Data = payload
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading SSE stream: %w", err)
	}
	return nil
}
