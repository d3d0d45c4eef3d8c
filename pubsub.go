// Package pubsub is a client for a hosted publish/subscribe messaging service
// speaking its v1 REST API. It lets a publisher send messages to named topics
// and lets subscribers receive them by pulling on demand or by configuring
// push delivery to an HTTP endpoint.
//
// Topic and subscription names may be given in relative form ("alerts") or in
// absolute form ("projects/<project>/topics/alerts"); every operation
// normalizes the name before calling the service, so callers never need to
// pre-resolve. The client performs no internal retries and never swallows a
// service failure.
package pubsub

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"google.golang.org/api/iterator"
)

// Config stores the configuration parameters of a pubsub client.
type Config struct {
	// ProjectID is the project every relative topic and subscription name is
	// resolved against.
	ProjectID string
}

// Client is the entry point of the package. It owns the project identity and
// creates, looks up, lists and deletes topics and subscriptions. The
// transport decides whether calls go to the production service or to a local
// emulator; that choice is made once, when the transport is constructed, and
// the client never changes it.
type Client struct {
	Config

	transport Transport
	logger    Logger
	metrics   Metrics
}

// New builds a client on top of an externally supplied transport. The client
// borrows the transport for the duration of each call and never closes it.
func New(conf Config, transport Transport, logger Logger, metrics Metrics) (*Client, error) {
	if conf.ProjectID == "" {
		return nil, errProjectIDNotProvided
	}

	if transport == nil {
		return nil, errTransportNotProvided
	}

	logger.Debugf("pubsub client configured for project '%s'", conf.ProjectID)

	return &Client{Config: conf, transport: transport, logger: logger, metrics: metrics}, nil
}

// CreateTopic creates the topic and returns a live handle to it.
func (c *Client) CreateTopic(ctx context.Context, name string) (*Topic, error) {
	abs, err := resolveName(name, c.ProjectID, kindTopic)
	if err != nil {
		return nil, err
	}

	if err := c.transport.Send(ctx, http.MethodPut, abs, nil, nil); err != nil {
		c.logger.Errorf("could not create topic '%s', error: %v", abs, err)

		return nil, err
	}

	return newTopic(c, abs), nil
}

// Topic looks up an existing topic. A topic that does not exist fails with
// ErrNotFound.
func (c *Client) Topic(ctx context.Context, name string) (*Topic, error) {
	abs, err := resolveName(name, c.ProjectID, kindTopic)
	if err != nil {
		return nil, err
	}

	var res topicResource
	if err := c.transport.Send(ctx, http.MethodGet, abs, nil, &res); err != nil {
		return nil, notFoundErr(err, kindTopic, abs)
	}

	return newTopic(c, res.Name), nil
}

// DeleteTopic resolves name and removes the backing resource, like
// Topic.Delete on a looked-up handle.
func (c *Client) DeleteTopic(ctx context.Context, name string) error {
	abs, err := resolveName(name, c.ProjectID, kindTopic)
	if err != nil {
		return err
	}

	return newTopic(c, abs).Delete(ctx)
}

// Topics returns an iterator over all topics of the project. The iterator is
// lazy, pages through the service as it is advanced and signals exhaustion
// with iterator.Done. Each call returns a fresh iterator, so the sequence is
// restartable.
func (c *Client) Topics(ctx context.Context) *TopicIterator {
	return &TopicIterator{ctx: ctx, client: c}
}

// PageTopics exposes the paging behind Topics explicitly: the returned page
// holds the first batch of handles and knows whether and how to fetch the
// next one. pageSize <= 0 leaves the batch size to the service.
func (c *Client) PageTopics(ctx context.Context, pageSize int) (*TopicPage, error) {
	return c.pageTopics(ctx, "", pageSize)
}

func (c *Client) pageTopics(ctx context.Context, pageToken string, pageSize int) (*TopicPage, error) {
	var res listTopicsResponse

	path := listPath("projects/"+c.ProjectID+"/topics", pageSize, pageToken)
	if err := c.transport.Send(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}

	page := &TopicPage{client: c, pageSize: pageSize, nextPageToken: res.NextPageToken}
	for _, t := range res.Topics {
		page.Topics = append(page.Topics, newTopic(c, t.Name))
	}

	return page, nil
}

// CreateSubscription creates a subscription binding topic to the given name
// and returns a live handle. A non-empty endpoint creates the subscription in
// push mode, delivering to that URI; an empty endpoint creates it in pull
// mode. Both names may be relative or absolute.
func (c *Client) CreateSubscription(ctx context.Context, name, topic, endpoint string) (*Subscription, error) {
	absSub, err := resolveName(name, c.ProjectID, kindSubscription)
	if err != nil {
		return nil, err
	}

	absTopic, err := resolveName(topic, c.ProjectID, kindTopic)
	if err != nil {
		return nil, err
	}

	req := subscriptionResource{Topic: absTopic}
	if endpoint != "" {
		req.PushConfig = &pushConfig{PushEndpoint: endpoint}
	}

	if err := c.transport.Send(ctx, http.MethodPut, absSub, req, nil); err != nil {
		c.logger.Errorf("could not create subscription '%s' on topic '%s', error: %v", absSub, absTopic, err)

		return nil, notFoundErr(err, kindTopic, absTopic)
	}

	return &Subscription{
		client:       c,
		name:         relativeName(absSub),
		absoluteName: absSub,
		topic:        newTopic(c, absTopic),
		endpoint:     endpoint,
	}, nil
}

// Subscription looks up an existing subscription, including its bound topic
// and push configuration. A subscription that does not exist fails with
// ErrNotFound.
func (c *Client) Subscription(ctx context.Context, name string) (*Subscription, error) {
	abs, err := resolveName(name, c.ProjectID, kindSubscription)
	if err != nil {
		return nil, err
	}

	var res subscriptionResource
	if err := c.transport.Send(ctx, http.MethodGet, abs, nil, &res); err != nil {
		return nil, notFoundErr(err, kindSubscription, abs)
	}

	return subscriptionFromResource(c, res), nil
}

// DeleteSubscription resolves name and removes the backing resource, like
// Subscription.Delete on a looked-up handle.
func (c *Client) DeleteSubscription(ctx context.Context, name string) error {
	abs, err := resolveName(name, c.ProjectID, kindSubscription)
	if err != nil {
		return err
	}

	s := &Subscription{client: c, name: relativeName(abs), absoluteName: abs}

	return s.Delete(ctx)
}

// Subscriptions returns an iterator over all subscriptions of the project.
// To list only the subscriptions of one topic, use Topic.Subscriptions,
// which filters server-side.
func (c *Client) Subscriptions(ctx context.Context) *SubscriptionIterator {
	return &SubscriptionIterator{ctx: ctx, client: c, source: "projects/" + c.ProjectID + "/subscriptions"}
}

// PageSubscriptions exposes the paging behind Subscriptions explicitly.
func (c *Client) PageSubscriptions(ctx context.Context, pageSize int) (*SubscriptionPage, error) {
	return c.pageSubscriptions(ctx, "projects/"+c.ProjectID+"/subscriptions", nil, "", pageSize)
}

func (c *Client) pageSubscriptions(ctx context.Context, source string, byTopic *Topic,
	pageToken string, pageSize int) (*SubscriptionPage, error) {
	page := &SubscriptionPage{client: c, source: source, byTopic: byTopic, pageSize: pageSize}
	path := listPath(source, pageSize, pageToken)

	if byTopic != nil {
		var res listTopicSubscriptionsResponse
		if err := c.transport.Send(ctx, http.MethodGet, path, nil, &res); err != nil {
			return nil, notFoundErr(err, kindTopic, byTopic.absoluteName)
		}

		for _, name := range res.Subscriptions {
			page.Subscriptions = append(page.Subscriptions, &Subscription{
				client:       c,
				name:         relativeName(name),
				absoluteName: name,
				topic:        byTopic,
			})
		}

		page.nextPageToken = res.NextPageToken

		return page, nil
	}

	var res listSubscriptionsResponse
	if err := c.transport.Send(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}

	for _, r := range res.Subscriptions {
		page.Subscriptions = append(page.Subscriptions, subscriptionFromResource(c, r))
	}

	page.nextPageToken = res.NextPageToken

	return page, nil
}

func subscriptionFromResource(c *Client, res subscriptionResource) *Subscription {
	s := &Subscription{client: c, name: relativeName(res.Name), absoluteName: res.Name}

	if res.Topic != "" {
		s.topic = newTopic(c, res.Topic)
	}

	if res.PushConfig != nil {
		s.endpoint = res.PushConfig.PushEndpoint
	}

	return s
}

func listPath(collection string, pageSize int, pageToken string) string {
	q := url.Values{}

	if pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(pageSize))
	}

	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}

	if len(q) == 0 {
		return collection
	}

	return collection + "?" + q.Encode()
}

// TopicPage holds one batch of topic handles plus the cursor to the next
// batch, if any.
type TopicPage struct {
	Topics []*Topic

	client        *Client
	pageSize      int
	nextPageToken string
}

// HasNext reports whether the service holds more topics beyond this page.
func (p *TopicPage) HasNext() bool {
	return p.nextPageToken != ""
}

// Next fetches the following page. It fails with iterator.Done when this page
// was the last one.
func (p *TopicPage) Next(ctx context.Context) (*TopicPage, error) {
	if !p.HasNext() {
		return nil, iterator.Done
	}

	return p.client.pageTopics(ctx, p.nextPageToken, p.pageSize)
}

// TopicIterator walks all topics of a project, paging lazily.
type TopicIterator struct {
	ctx     context.Context
	client  *Client
	items   []*Topic
	page    *TopicPage
	started bool
}

// Next returns the next topic. It fails with iterator.Done once the sequence
// is exhausted; any other error comes from the underlying list call.
func (it *TopicIterator) Next() (*Topic, error) {
	for len(it.items) == 0 {
		if it.started && !it.page.HasNext() {
			return nil, iterator.Done
		}

		var (
			page *TopicPage
			err  error
		)

		if it.started {
			page, err = it.page.Next(it.ctx)
		} else {
			page, err = it.client.pageTopics(it.ctx, "", 0)
		}

		if err != nil {
			return nil, err
		}

		it.page = page
		it.items = page.Topics
		it.started = true
	}

	t := it.items[0]
	it.items = it.items[1:]

	return t, nil
}

// SubscriptionPage holds one batch of subscription handles plus the cursor to
// the next batch, if any. Pages obtained from a topic listing carry name and
// topic only; use Client.Subscription to fetch a handle's delivery
// configuration.
type SubscriptionPage struct {
	Subscriptions []*Subscription

	client        *Client
	source        string
	byTopic       *Topic
	pageSize      int
	nextPageToken string
}

// HasNext reports whether the service holds more subscriptions beyond this
// page.
func (p *SubscriptionPage) HasNext() bool {
	return p.nextPageToken != ""
}

// Next fetches the following page. It fails with iterator.Done when this page
// was the last one.
func (p *SubscriptionPage) Next(ctx context.Context) (*SubscriptionPage, error) {
	if !p.HasNext() {
		return nil, iterator.Done
	}

	return p.client.pageSubscriptions(ctx, p.source, p.byTopic, p.nextPageToken, p.pageSize)
}

// SubscriptionIterator walks subscriptions, paging lazily.
type SubscriptionIterator struct {
	ctx     context.Context
	client  *Client
	source  string
	byTopic *Topic
	items   []*Subscription
	page    *SubscriptionPage
	started bool
}

// Next returns the next subscription. It fails with iterator.Done once the
// sequence is exhausted.
func (it *SubscriptionIterator) Next() (*Subscription, error) {
	for len(it.items) == 0 {
		if it.started && !it.page.HasNext() {
			return nil, iterator.Done
		}

		var (
			page *SubscriptionPage
			err  error
		)

		if it.started {
			page, err = it.page.Next(it.ctx)
		} else {
			page, err = it.client.pageSubscriptions(it.ctx, it.source, it.byTopic, "", 0)
		}

		if err != nil {
			return nil, err
		}

		it.page = page
		it.items = page.Subscriptions
		it.started = true
	}

	s := it.items[0]
	it.items = it.items[1:]

	return s, nil
}
