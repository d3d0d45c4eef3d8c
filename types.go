package pubsub

import "time"

// Wire types for the v1 REST API. []byte fields ride as base64 strings,
// which is what the service expects for message bodies.
type (
	topicResource struct {
		Name string `json:"name"`
	}

	subscriptionResource struct {
		Name               string      `json:"name"`
		Topic              string      `json:"topic"`
		PushConfig         *pushConfig `json:"pushConfig,omitempty"`
		AckDeadlineSeconds int         `json:"ackDeadlineSeconds,omitempty"`
	}

	pushConfig struct {
		PushEndpoint string `json:"pushEndpoint,omitempty"`
	}

	wireMessage struct {
		MessageID   string            `json:"messageId,omitempty"`
		Data        []byte            `json:"data,omitempty"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		PublishTime time.Time         `json:"publishTime"`
	}

	publishRequest struct {
		Messages []wireMessage `json:"messages"`
	}

	publishResponse struct {
		MessageIDs []string `json:"messageIds"`
	}

	pullRequest struct {
		ReturnImmediately bool `json:"returnImmediately"`
		MaxMessages       int  `json:"maxMessages"`
	}

	pullResponse struct {
		ReceivedMessages []receivedMessage `json:"receivedMessages"`
	}

	receivedMessage struct {
		AckID   string      `json:"ackId"`
		Message wireMessage `json:"message"`
	}

	ackRequest struct {
		AckIDs []string `json:"ackIds"`
	}

	modifyAckDeadlineRequest struct {
		AckIDs             []string `json:"ackIds"`
		AckDeadlineSeconds int      `json:"ackDeadlineSeconds"`
	}

	modifyPushConfigRequest struct {
		PushConfig pushConfig `json:"pushConfig"`
	}

	listTopicsResponse struct {
		Topics        []topicResource `json:"topics"`
		NextPageToken string          `json:"nextPageToken"`
	}

	listSubscriptionsResponse struct {
		Subscriptions []subscriptionResource `json:"subscriptions"`
		NextPageToken string                 `json:"nextPageToken"`
	}

	// listing a topic's subscriptions yields names only, not full resources.
	listTopicSubscriptionsResponse struct {
		Subscriptions []string `json:"subscriptions"`
		NextPageToken string   `json:"nextPageToken"`
	}

	pushPayload struct {
		Message      *pushPayloadMessage `json:"message"`
		Subscription string              `json:"subscription"`
	}

	// the push body keeps Data as a string so a non-base64 payload from an
	// emulator can fall back to plain text instead of failing the decode.
	pushPayloadMessage struct {
		MessageID  string            `json:"messageId"`
		Data       string            `json:"data"`
		Attributes map[string]string `json:"attributes"`
	}
)
