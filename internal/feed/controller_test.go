package feed

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"applixy/internal/domain"
)

type fakeStream struct {
	ch  chan []domain.Document
	err error
}

func (f *fakeStream) Snapshots() <-chan []domain.Document { return f.ch }
func (f *fakeStream) Err() error                          { return f.err }

func scholarshipDoc(id, name string) domain.Document {
	return domain.Document{
		ID: id,
		Fields: map[string]any{
			"name":                 name,
			"award_amount":         1000,
			"application_deadline": "2025-06-01",
		},
	}
}

type ControllerTestSuite struct {
	suite.Suite

	saved      *SavedRegistry
	controller *Controller
	logger     *slog.Logger
}

func (s *ControllerTestSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.saved = NewSavedRegistry()
	s.controller = NewController(s.saved, s.logger)
}

func TestControllerTestSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}

func (s *ControllerTestSuite) TestCurrent_EmptyFeedIsCaughtUp() {
	_, ok := s.controller.Current()
	s.False(ok)
}

func (s *ControllerTestSuite) TestAdvance_ReachesCaughtUpAfterLastItem() {
	s.controller.apply([]domain.Document{
		scholarshipDoc("1", "A"),
		scholarshipDoc("2", "B"),
		scholarshipDoc("3", "C"),
	})

	for i := 0; i < 3; i++ {
		cur, ok := s.controller.Current()
		s.True(ok)
		s.NotEmpty(cur.ID)
		s.controller.Advance()
	}

	_, ok := s.controller.Current()
	s.False(ok)
}

func (s *ControllerTestSuite) TestSkip_AdvancesWithoutSaving() {
	s.controller.apply([]domain.Document{scholarshipDoc("1", "A")})

	s.controller.Skip()

	s.Equal(1, s.controller.Cursor())
	s.Equal(0, s.saved.Len())
}

func (s *ControllerTestSuite) TestSave_StoresAndAdvances() {
	s.controller.apply([]domain.Document{
		scholarshipDoc("1", "A"),
		scholarshipDoc("2", "B"),
	})

	cur, ok := s.controller.Current()
	s.Require().True(ok)
	s.controller.Save(cur)

	s.Equal(1, s.controller.Cursor())
	s.True(s.saved.Contains("1"))
	s.Equal(1, s.saved.Len())
}

func (s *ControllerTestSuite) TestApply_DropsDuplicateIDs() {
	s.controller.apply([]domain.Document{
		scholarshipDoc("1", "A"),
		scholarshipDoc("1", "A again"),
		scholarshipDoc("2", "B"),
	})

	s.Equal(2, s.controller.Len())
}

func (s *ControllerTestSuite) TestRun_SnapshotReplacementResetsCursor() {
	stream := &fakeStream{ch: make(chan []domain.Document)}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.controller.Run(ctx, stream) }()

	stream.ch <- []domain.Document{
		scholarshipDoc("1", "A"),
		scholarshipDoc("2", "B"),
		scholarshipDoc("3", "C"),
	}
	s.Eventually(func() bool { return s.controller.Len() == 3 }, time.Second, 5*time.Millisecond)

	s.controller.Advance()
	s.controller.Advance()
	s.Equal(2, s.controller.Cursor())

	stream.ch <- []domain.Document{
		scholarshipDoc("1", "A"),
		scholarshipDoc("2", "B"),
		scholarshipDoc("3", "C"),
		scholarshipDoc("4", "D"),
		scholarshipDoc("5", "E"),
	}
	s.Eventually(func() bool { return s.controller.Len() == 5 }, time.Second, 5*time.Millisecond)
	s.Equal(0, s.controller.Cursor())

	close(stream.ch)
	s.NoError(<-done)
}

func (s *ControllerTestSuite) TestRun_MalformedDocumentDegradesToDefaults() {
	stream := &fakeStream{ch: make(chan []domain.Document, 1)}
	stream.ch <- []domain.Document{
		{ID: "1", Fields: map[string]any{"award_amount": true, "tags": 42}},
	}
	close(stream.ch)

	s.NoError(s.controller.Run(context.Background(), stream))

	s.Equal(1, s.controller.Len())
	cur, ok := s.controller.Current()
	s.True(ok)
	s.Equal("Scholarship", cur.Title)
	s.Equal("—", cur.AwardAmount)
}

func (s *ControllerTestSuite) TestRun_StreamErrorKeepsLastSnapshot() {
	stream := &fakeStream{ch: make(chan []domain.Document)}

	done := make(chan error, 1)
	go func() { done <- s.controller.Run(context.Background(), stream) }()

	stream.ch <- []domain.Document{
		scholarshipDoc("1", "A"),
		scholarshipDoc("2", "B"),
	}
	s.Eventually(func() bool { return s.controller.Len() == 2 }, time.Second, 5*time.Millisecond)

	stream.err = errors.New("connection reset")
	close(stream.ch)

	err := <-done
	s.ErrorContains(err, "feed subscription")
	s.Equal(2, s.controller.Len(), "stale items must survive a transport error")
	s.Error(s.controller.Err())
}

func (s *ControllerTestSuite) TestRun_StopsOnContextCancel() {
	stream := &fakeStream{ch: make(chan []domain.Document)}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.controller.Run(ctx, stream) }()

	cancel()
	s.ErrorIs(<-done, context.Canceled)
}
