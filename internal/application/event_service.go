package application

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/eventtix/ticket-booking/internal/domain/entity"
	"github.com/eventtix/ticket-booking/internal/domain/repository"
	"github.com/eventtix/ticket-booking/pkg/helpers"
)

const eventListKeyPrefix = "events:list:"

// EventService manages events. Listings are cached in Redis and events are
// indexed into Elasticsearch when those collaborators are configured; both are
// optional and best-effort.
type EventService struct {
	Repo          repository.EventRepository
	Redis         *redis.Client
	CacheTTL      time.Duration
	Logger        *logrus.Logger
	ES            *elasticsearch.Client
	ESEventsIndex string
}

func NewEventService(repo repository.EventRepository, rdb *redis.Client, cacheTTL time.Duration, logger *logrus.Logger, es *elasticsearch.Client, esEventsIndex string) *EventService {
	return &EventService{
		Repo:          repo,
		Redis:         rdb,
		CacheTTL:      cacheTTL,
		Logger:        logger,
		ES:            es,
		ESEventsIndex: esEventsIndex,
	}
}

type EventInput struct {
	Name        string
	Description string
	EventDate   time.Time
	Capacity    int
}

// Create persists a new event. The live seat counter starts at full capacity.
func (s *EventService) Create(ctx context.Context, in EventInput) (*entity.Event, error) {
	e := &entity.Event{
		Name:           in.Name,
		Description:    in.Description,
		EventDate:      in.EventDate,
		Capacity:       in.Capacity,
		AvailableSeats: in.Capacity,
	}
	if err := s.Repo.Create(ctx, e); err != nil {
		return nil, err
	}
	s.evictListCache(ctx)
	_ = s.indexEvent(ctx, e)
	return e, nil
}

func (s *EventService) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	return s.Repo.GetByID(ctx, id)
}

type eventPage struct {
	Events []entity.Event `json:"events"`
	Total  int64          `json:"total"`
}

// List returns a page of events. Pages are served from Redis when cached;
// every event write evicts the listing cache.
func (s *EventService) List(ctx context.Context, page, size int, sort string) ([]entity.Event, int64, error) {
	key := eventListKeyPrefix + strconv.Itoa(page) + ":" + strconv.Itoa(size) + ":" + sort
	if s.Redis != nil {
		var cached eventPage
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, key, &cached); err == nil && ok {
			return cached.Events, cached.Total, nil
		}
	}

	events, total, err := s.Repo.List(ctx, page, size, sort)
	if err != nil {
		return nil, 0, err
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, key, eventPage{Events: events, Total: total}, s.CacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("event list cache set failed")
		}
	}
	return events, total, nil
}

// Update rewrites an event. The repository reconciles the seat counter under
// the same locking discipline as booking, so in-flight bookings are never
// lost to a concurrent capacity change.
func (s *EventService) Update(ctx context.Context, id int64, in EventInput) (*entity.Event, error) {
	e, err := s.Repo.Update(ctx, id, repository.EventUpdate{
		Name:        in.Name,
		Description: in.Description,
		EventDate:   in.EventDate,
		Capacity:    in.Capacity,
	})
	if err != nil {
		return nil, err
	}
	s.evictListCache(ctx)
	_ = s.indexEvent(ctx, e)
	return e, nil
}

func (s *EventService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.evictListCache(ctx)
	s.deleteEventIndex(ctx, id)
	return nil
}

func (s *EventService) evictListCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDelByPattern(ctx, s.Redis, eventListKeyPrefix+"*"); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("event list cache evict failed")
	}
}

func (s *EventService) indexEvent(ctx context.Context, e *entity.Event) error {
	if s.ES == nil || s.ESEventsIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":              e.ID,
		"name":            e.Name,
		"description":     e.Description,
		"event_date":      e.EventDate.Format(time.RFC3339Nano),
		"capacity":        e.Capacity,
		"available_seats": e.AvailableSeats,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESEventsIndex,
		DocumentID: strconv.FormatInt(e.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("event_id", e.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("event_id", e.ID).Warn("es index response error")
	}
	return nil
}

func (s *EventService) deleteEventIndex(ctx context.Context, id int64) {
	if s.ES == nil || s.ESEventsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESEventsIndex, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("event_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match query on event name and description.
func (s *EventService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESEventsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESEventsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
