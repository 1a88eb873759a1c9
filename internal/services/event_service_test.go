package services

import (
	"context"
	"errors"
	"testing"

	"github.com/eventboard/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeEventRepository is an in-memory implementation of EventRepository
type fakeEventRepository struct {
	events  []models.Event
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeEventRepository) Load(ctx context.Context) ([]models.Event, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make([]models.Event, len(f.events))
	copy(out, f.events)
	return out, nil
}

func (f *fakeEventRepository) Save(ctx context.Context, events []models.Event) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.events = events
	f.saves++
	return nil
}

// fakeVisitMarker is an in-memory implementation of VisitMarker
type fakeVisitMarker struct {
	visits  map[string]int64
	markErr error
	readErr error
}

func newFakeVisitMarker() *fakeVisitMarker {
	return &fakeVisitMarker{visits: make(map[string]int64)}
}

func (f *fakeVisitMarker) MarkVisited(ctx context.Context, userID int, eventID string) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.visits[eventID] = 1700000000000
	return nil
}

func (f *fakeVisitMarker) LastVisited(ctx context.Context, userID int, eventID string) (int64, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	return f.visits[eventID], nil
}

func testEvents() []models.Event {
	return []models.Event{
		{ID: "ev-1", Title: "Tokyo Meetup", CreatedAt: "2026-01-02T10:00:00Z", Functions: models.DefaultEventFunctions()},
		{ID: "ev-2", Title: "Osaka Workshop", Password: "sakura", CreatedAt: "2026-01-03T10:00:00Z", Functions: models.DefaultEventFunctions()},
		{ID: "ev-3", Title: "Kyoto Hackathon", CreatedAt: "2026-01-04T10:00:00Z", Functions: models.DefaultEventFunctions()},
	}
}

func TestEventService_List(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	admin := &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}
	member := &models.User{ID: 2, Username: "member", Role: models.RoleMember}

	t.Run("guest gets cards without passwords or visits", func(t *testing.T) {
		repo := &fakeEventRepository{events: testEvents()}
		svc := NewEventService(repo, newFakeVisitMarker(), logger)

		cards, err := svc.List(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, cards, 3)
		assert.Equal(t, "Tokyo Meetup", cards[0].Title)
		assert.False(t, cards[0].HasPassword)
		assert.True(t, cards[1].HasPassword)
		assert.Empty(t, cards[1].Password)
		assert.Zero(t, cards[1].LastVisitedAt)
	})

	t.Run("member gets visit markers", func(t *testing.T) {
		repo := &fakeEventRepository{events: testEvents()}
		visits := newFakeVisitMarker()
		visits.visits["ev-2"] = 1699999999999
		svc := NewEventService(repo, visits, logger)

		cards, err := svc.List(context.Background(), member)

		require.NoError(t, err)
		assert.EqualValues(t, 1699999999999, cards[1].LastVisitedAt)
		assert.Zero(t, cards[0].LastVisitedAt)
		assert.Empty(t, cards[1].Password)
	})

	t.Run("admin additionally gets stored passwords", func(t *testing.T) {
		repo := &fakeEventRepository{events: testEvents()}
		svc := NewEventService(repo, newFakeVisitMarker(), logger)

		cards, err := svc.List(context.Background(), admin)

		require.NoError(t, err)
		assert.Equal(t, "sakura", cards[1].Password)
	})

	t.Run("marker read failure renders as never visited", func(t *testing.T) {
		repo := &fakeEventRepository{events: testEvents()}
		visits := newFakeVisitMarker()
		visits.readErr = errors.New("redis down")
		svc := NewEventService(repo, visits, logger)

		cards, err := svc.List(context.Background(), member)

		require.NoError(t, err)
		assert.Zero(t, cards[0].LastVisitedAt)
	})
}

func TestEventService_Create(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	admin := &models.User{ID: 1, Role: models.RoleAdmin}
	member := &models.User{ID: 2, Role: models.RoleMember}

	tests := []struct {
		name          string
		actor         *models.User
		title         string
		password      string
		existing      []models.Event
		expectedError error
	}{
		{
			name:  "success",
			actor: admin,
			title: "New Event",
		},
		{
			name:          "guest rejected",
			actor:         nil,
			title:         "New Event",
			expectedError: ErrNotAdmin,
		},
		{
			name:          "member rejected",
			actor:         member,
			title:         "New Event",
			expectedError: ErrNotAdmin,
		},
		{
			name:          "blank title rejected",
			actor:         admin,
			title:         "   ",
			expectedError: ErrEmptyTitle,
		},
		{
			name:          "capacity reached",
			actor:         admin,
			title:         "Seventh",
			existing:      make([]models.Event, 6),
			expectedError: ErrEventLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeEventRepository{events: tt.existing}
			svc := NewEventService(repo, newFakeVisitMarker(), logger)

			event, err := svc.Create(context.Background(), tt.actor, tt.title, tt.password)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, event)
				assert.Zero(t, repo.saves)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, event)
			assert.Len(t, repo.events, len(tt.existing)+1)
			assert.Equal(t, "New Event", event.Title)
			assert.True(t, event.Functions.CurrencyConverter)
			assert.False(t, event.Functions.Voting)

			_, parseErr := uuid.Parse(event.ID)
			assert.NoError(t, parseErr)
		})
	}
}

func TestEventService_Create_UniqueIDs(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	admin := &models.User{ID: 1, Role: models.RoleAdmin}
	repo := &fakeEventRepository{}
	svc := NewEventService(repo, newFakeVisitMarker(), logger)

	first, err := svc.Create(context.Background(), admin, "First", "")
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), admin, "Second", "")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestEventService_Edit(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	tests := []struct {
		name          string
		index         int
		title         string
		password      string
		expectedError error
	}{
		{
			name:     "updates title and password",
			index:    0,
			title:    "Renamed",
			password: "new-pass",
		},
		{
			name:     "empty password clears protection",
			index:    1,
			title:    "Osaka Workshop",
			password: "  ",
		},
		{
			name:          "blank title rejected before load",
			index:         0,
			title:         "",
			expectedError: ErrEmptyTitle,
		},
		{
			name:          "negative index",
			index:         -1,
			title:         "Renamed",
			expectedError: ErrEventNotFound,
		},
		{
			name:          "stale index past the end",
			index:         3,
			title:         "Renamed",
			expectedError: ErrEventNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeEventRepository{events: testEvents()}
			svc := NewEventService(repo, newFakeVisitMarker(), logger)

			event, err := svc.Edit(context.Background(), tt.index, tt.title, tt.password)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, event)
				assert.Zero(t, repo.saves)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, event)
			assert.Equal(t, tt.title, event.Title)
			assert.Equal(t, tt.title, repo.events[tt.index].Title)
			if tt.password == "  " {
				assert.False(t, repo.events[tt.index].HasPassword())
			}
			// The identity of the edited event never changes
			assert.Equal(t, testEvents()[tt.index].ID, event.ID)
		})
	}
}

func TestEventService_Delete(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	t.Run("removes exactly the addressed event", func(t *testing.T) {
		repo := &fakeEventRepository{events: testEvents()}
		svc := NewEventService(repo, newFakeVisitMarker(), logger)

		title, err := svc.Delete(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, "Osaka Workshop", title)
		require.Len(t, repo.events, 2)
		assert.Equal(t, "ev-1", repo.events[0].ID)
		assert.Equal(t, "ev-3", repo.events[1].ID)
	})

	t.Run("stale index is not found", func(t *testing.T) {
		repo := &fakeEventRepository{events: testEvents()}
		svc := NewEventService(repo, newFakeVisitMarker(), logger)

		_, err := svc.Delete(context.Background(), 5)

		assert.ErrorIs(t, err, ErrEventNotFound)
		assert.Len(t, repo.events, 3)
	})
}

func TestEventService_Open(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	member := &models.User{ID: 2, Role: models.RoleMember}

	tests := []struct {
		name          string
		index         int
		password      string
		user          *models.User
		expectedError error
		expectedID    string
		wantMarker    bool
	}{
		{
			name:       "password-free event opens directly",
			index:      0,
			user:       member,
			expectedID: "ev-1",
			wantMarker: true,
		},
		{
			name:       "guest opens without a marker",
			index:      0,
			user:       nil,
			expectedID: "ev-1",
		},
		{
			name:          "protected event rejects empty password",
			index:         1,
			password:      "",
			user:          member,
			expectedError: ErrWrongPassword,
		},
		{
			name:          "protected event rejects wrong password",
			index:         1,
			password:      "wrong",
			user:          member,
			expectedError: ErrWrongPassword,
		},
		{
			name:       "protected event opens with exact password",
			index:      1,
			password:   "sakura",
			user:       member,
			expectedID: "ev-2",
			wantMarker: true,
		},
		{
			name:          "out of range",
			index:         9,
			user:          member,
			expectedError: ErrEventNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeEventRepository{events: testEvents()}
			visits := newFakeVisitMarker()
			svc := NewEventService(repo, visits, logger)

			event, err := svc.Open(context.Background(), tt.index, tt.password, tt.user)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, event)
				assert.Empty(t, visits.visits)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, event)
			assert.Equal(t, tt.expectedID, event.ID)
			if tt.wantMarker {
				assert.Contains(t, visits.visits, tt.expectedID)
			} else {
				assert.Empty(t, visits.visits)
			}
		})
	}
}

func TestEventService_Open_MarkerFailureIsNotFatal(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	member := &models.User{ID: 2, Role: models.RoleMember}
	repo := &fakeEventRepository{events: testEvents()}
	visits := newFakeVisitMarker()
	visits.markErr = errors.New("redis down")
	svc := NewEventService(repo, visits, logger)

	event, err := svc.Open(context.Background(), 0, "", member)

	require.NoError(t, err)
	assert.Equal(t, "ev-1", event.ID)
}
