package pubsub

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteSSE writes an event in server-sent-event framing: "data: {json}\n\n".
func WriteSSE(w io.Writer, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", payload)
	return err
}
