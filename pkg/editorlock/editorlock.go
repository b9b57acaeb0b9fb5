// Package editorlock mints and decodes the scorer's session tokens. The
// token carries the event id and a fresh session id; the session id written
// to the event's access document is the single source of truth for who may
// edit. Holding a token for a session that is no longer current grants
// nothing.
package editorlock

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/samborkent/uuidv7"
)

// NewSessionID returns a fresh editor session id.
func NewSessionID() string {
	return uuidv7.New().String()
}

// EncodeToken packs the event id and session id into the opaque token handed
// to the editor client.
func EncodeToken(eventID, sessionID string) string {
	token := fmt.Sprintf("%s|%s", eventID, sessionID)
	return base64.StdEncoding.EncodeToString([]byte(token))
}

// DecodeToken unpacks an editor token into its event id and session id.
func DecodeToken(token string) (eventID, sessionID string, err error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", "", err
	}
	parts := strings.Split(string(decodedBytes), "|")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("not correct format")
	}
	return parts[0], parts[1], nil
}
