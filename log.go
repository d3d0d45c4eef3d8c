package pubsub

import (
	"fmt"
	"io"
)

// Log is the structured record pubsub operations emit at debug level.
type Log struct {
	Mode          string `json:"mode"`
	CorrelationID string `json:"correlationID"`
	MessageID     string `json:"messageID"`
	MessageValue  string `json:"messageValue"`
	Topic         string `json:"topic"`
	Host          string `json:"host"`
	Time          int64  `json:"time"`
}

func (l *Log) PrettyPrint(writer io.Writer) {
	fmt.Fprintf(writer, "[38;5;8m%-32s [38;5;24m%-10s[0m %8d[38;5;8mµs[0m %-4s %s [38;5;101m%s[0m\n",
		l.CorrelationID, l.Host, l.Time, l.Mode, l.Topic, l.MessageValue)
}
