package websocket

import (
	"encoding/json"
	"time"
)

const (
	MessageTypePing       = "ping"
	MessageTypePong       = "pong"
	MessageTypeFileStatus = "file.status"
)

type WSMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

type FileStatusData struct {
	FileID            string `json:"fileId"`
	FileName          string `json:"fileName"`
	FileHash          string `json:"fileHash"`
	Status            string `json:"status"`
	TransactionHash   string `json:"transactionHash,omitempty"`
	VerificationError string `json:"verificationError,omitempty"`
}

func encode(msgType string, data interface{}) ([]byte, error) {
	return json.Marshal(WSMessage{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// handleIncoming answers pings; clients have nothing else to send.
func (c *Client) handleIncoming(raw []byte) {
	var msg WSMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return
	}
	if msg.Type != MessageTypePing {
		return
	}

	pong, err := encode(MessageTypePong, nil)
	if err != nil {
		return
	}
	select {
	case c.Send <- pong:
	default:
	}
}
