// Package transport provides the default authenticated HTTP transport for the
// pubsub client. It targets the production service root, or a local emulator
// when one is configured; the choice is made once, at construction, and never
// changes afterwards.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"gofr.dev/pubsub"
	"gofr.dev/pubsub/config"
)

const (
	productionRoot = "https://pubsub.googleapis.com/v1/"
	pubsubScope    = "https://www.googleapis.com/auth/pubsub"

	defaultTimeout = 30 * time.Second
)

var errEmptyCredentialsFile = errors.New("credentials file is empty")

// Config stores the configuration parameters of the HTTP transport.
type Config struct {
	// EmulatorHost, when non-empty, redirects every call to http://<host>/
	// instead of the production root and disables authentication.
	EmulatorHost string

	// CredentialsFile is a service account key file used to mint tokens. When
	// empty, Application Default Credentials are used. Ignored in emulator
	// mode.
	CredentialsFile string

	// Timeout bounds each request, including the poll window of waiting pull
	// calls. Zero means 30s.
	Timeout time.Duration
}

// FromConfig builds a transport Config from the recognized environment keys:
// PUBSUB_EMULATOR_HOST and GOOGLE_APPLICATION_CREDENTIALS.
func FromConfig(conf config.Config) Config {
	return Config{
		EmulatorHost:    conf.Get("PUBSUB_EMULATOR_HOST"),
		CredentialsFile: conf.Get("GOOGLE_APPLICATION_CREDENTIALS"),
	}
}

// HTTP implements pubsub.Transport over the service's JSON REST API.
type HTTP struct {
	root   string
	client *http.Client
	logger pubsub.Logger
}

// New builds the transport. Emulator mode uses a plain HTTP client against
// http://<EmulatorHost>/v1/; production mode wraps the client with an OAuth2
// token source scoped to the service.
func New(ctx context.Context, conf Config, logger pubsub.Logger) (*HTTP, error) {
	if conf.Timeout <= 0 {
		conf.Timeout = defaultTimeout
	}

	if conf.EmulatorHost != "" {
		logger.Logf("pubsub transport using emulator at '%s'", conf.EmulatorHost)

		return &HTTP{
			root:   "http://" + conf.EmulatorHost + "/v1/",
			client: &http.Client{Timeout: conf.Timeout},
			logger: logger,
		}, nil
	}

	source, err := tokenSource(ctx, conf.CredentialsFile)
	if err != nil {
		logger.Errorf("could not configure pubsub credentials, error: %v", err)

		return nil, err
	}

	client := oauth2.NewClient(ctx, source)
	client.Timeout = conf.Timeout

	return &HTTP{root: productionRoot, client: client, logger: logger}, nil
}

func tokenSource(ctx context.Context, credentialsFile string) (oauth2.TokenSource, error) {
	if credentialsFile == "" {
		return google.DefaultTokenSource(ctx, pubsubScope)
	}

	key, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, err
	}

	if len(key) == 0 {
		return nil, errEmptyCredentialsFile
	}

	jwt, err := google.JWTConfigFromJSON(key, pubsubScope)
	if err != nil {
		return nil, err
	}

	return jwt.TokenSource(ctx), nil
}

// Send implements pubsub.Transport. Non-2xx responses are decoded from the
// service's error envelope into *pubsub.APIError.
func (t *HTTP) Send(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader

	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}

		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, t.root+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode > http.StatusPartialContent {
		return decodeAPIError(resp)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}

	return nil
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	envelope := struct {
		Error *pubsub.APIError `json:"error"`
	}{}

	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Error == nil {
		return &pubsub.APIError{
			Code:    resp.StatusCode,
			Status:  http.StatusText(resp.StatusCode),
			Message: strings.TrimSpace(string(raw)),
		}
	}

	return envelope.Error
}
