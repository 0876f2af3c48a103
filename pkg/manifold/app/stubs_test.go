package app

import (
	"context"

	"github.com/geomanifold/manifold/pkg/manifold"
	"github.com/pkg/errors"
)

// stubFeedType is a scriptable adapter capability.
type stubFeedType struct {
	id             string
	title          string
	topics         []manifold.FeedTopic
	constantSchema map[string]any
	variableSchema map[string]any

	previewFn func(params map[string]any) (*manifold.FeedContent, error)
	fetchFn   func(params map[string]any) (*manifold.FeedContent, error)

	previewedWith map[string]any
	fetchedWith   map[string]any
}

func (t *stubFeedType) ID() string                           { return t.id }
func (t *stubFeedType) Title() string                        { return t.title }
func (t *stubFeedType) Summary() string                      { return "" }
func (t *stubFeedType) ConstantParamsSchema() map[string]any { return t.constantSchema }
func (t *stubFeedType) VariableParamsSchema() map[string]any { return t.variableSchema }
func (t *stubFeedType) Topics() []manifold.FeedTopic         { return t.topics }

func (t *stubFeedType) PreviewContent(_ context.Context, params map[string]any) (*manifold.FeedContent, error) {
	t.previewedWith = params
	if t.previewFn != nil {
		return t.previewFn(params)
	}
	return &manifold.FeedContent{Items: []map[string]any{}}, nil
}

func (t *stubFeedType) FetchContentFromFeed(_ context.Context, params map[string]any) (*manifold.FeedContent, error) {
	t.fetchedWith = params
	if t.fetchFn != nil {
		return t.fetchFn(params)
	}
	return &manifold.FeedContent{Items: []map[string]any{}}, nil
}

type stubTypeStorage struct {
	types     []manifold.FeedType
	err       error
	readCalls int
	findCalls int
}

func (s *stubTypeStorage) ReadAll() ([]manifold.FeedType, error) {
	s.readCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.types, nil
}

func (s *stubTypeStorage) FindByID(id string) (manifold.FeedType, error) {
	s.findCalls++
	if s.err != nil {
		return nil, s.err
	}
	for _, t := range s.types {
		if t.ID() == id {
			return t, nil
		}
	}
	return nil, nil
}

type stubFeedStorage struct {
	feeds       map[string]*manifold.Feed
	createCalls int
	createErr   error
	nextID      string
}

func newStubFeedStorage() *stubFeedStorage {
	return &stubFeedStorage{feeds: map[string]*manifold.Feed{}, nextID: "feed-1"}
}

func (s *stubFeedStorage) Create(feed *manifold.Feed) (*manifold.Feed, error) {
	s.createCalls++
	if s.createErr != nil {
		return nil, s.createErr
	}
	stored := *feed
	stored.ID = s.nextID
	s.feeds[stored.ID] = &stored
	return &stored, nil
}

func (s *stubFeedStorage) ReadAll() ([]*manifold.Feed, error) {
	var all []*manifold.Feed
	for _, f := range s.feeds {
		all = append(all, f)
	}
	return all, nil
}

func (s *stubFeedStorage) FindByID(id string) (*manifold.Feed, error) {
	return s.feeds[id], nil
}

func (s *stubFeedStorage) Update(feed *manifold.Feed) (*manifold.Feed, error) {
	if _, ok := s.feeds[feed.ID]; !ok {
		return nil, errors.New("update of a feed that was never created")
	}
	stored := *feed
	s.feeds[feed.ID] = &stored
	return &stored, nil
}

func (s *stubFeedStorage) RemoveByID(id string) (*manifold.Feed, error) {
	feed, ok := s.feeds[id]
	if !ok {
		return nil, nil
	}
	delete(s.feeds, id)
	return feed, nil
}

type stubEventStorage struct {
	event *manifold.MageEvent
	err   error
	calls int

	gotEventID int64
	gotFeedID  string
}

func (s *stubEventStorage) AddFeedToEvent(eventID int64, feedID string) (*manifold.MageEvent, error) {
	s.calls++
	s.gotEventID = eventID
	s.gotFeedID = feedID
	return s.event, s.err
}

type stubSink struct {
	stored []*manifold.FeedContent
	err    error
}

func (s *stubSink) StoreContent(content *manifold.FeedContent) error {
	if s.err != nil {
		return s.err
	}
	s.stored = append(s.stored, content)
	return nil
}

func adminRequest(perms ...manifold.Permission) manifold.AdminRequest {
	return manifold.NewAdminRequest(manifold.Principal{UserID: "admin1", Permissions: perms})
}
