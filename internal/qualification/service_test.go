package qualification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/championmethod/funnel-platform/pkg/logging"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	client, _ := newTestRedis(t)
	return NewService(
		NewRedisSessionStore(client, time.Hour),
		NewTranscriptStore(client, time.Hour),
		nil,
		logging.Default(),
	)
}

// answerPath walks the whole graph picking the given option index at
// every question.
func answerPath(t *testing.T, svc *Service, sessionID string, optionIndex int) *Session {
	t.Helper()
	ctx := context.Background()
	for {
		sess, next, err := svc.Answer(ctx, sessionID, optionIndex)
		require.NoError(t, err)
		if next == nil {
			return sess
		}
	}
}

func TestServiceStart(t *testing.T) {
	svc := newTestService(t)

	sess, q, err := svc.Start(context.Background(), "visitor1")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "visitor1", sess.VisitorID)
	assert.Equal(t, StartQuestionID, sess.CurrentID)
	assert.Equal(t, "What's your current fitness level?", q.Text)

	msgs, err := svc.History(context.Background(), sess.ID, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "bot", msgs[0].Role)
}

func TestServiceBestPathIsHighlyQualified(t *testing.T) {
	svc := newTestService(t)
	sess, _, err := svc.Start(context.Background(), "")
	require.NoError(t, err)

	ctx := context.Background()
	// Best option per question: index 3,0,2,0,0,0.
	picks := []int{3, 0, 2, 0, 0, 0}
	var final *Session
	for _, idx := range picks {
		var next *Question
		final, next, err = svc.Answer(ctx, sess.ID, idx)
		require.NoError(t, err)
		if next == nil {
			break
		}
	}

	require.True(t, final.Completed)
	assert.InDelta(t, 143.5/14.5, final.Score, 1e-9)
	assert.Equal(t, OutcomeHighlyQualified, final.Outcome)
	assert.Equal(t, "/checkout?qualified=true&score=9.9", final.Redirect)
	assert.Len(t, final.Answers, QuestionCount())
}

func TestServiceLowPathRoutesToSalesPage(t *testing.T) {
	svc := newTestService(t)
	sess, _, err := svc.Start(context.Background(), "")
	require.NoError(t, err)

	final := answerPath(t, svc, sess.ID, 3)
	require.True(t, final.Completed)
	assert.Equal(t, OutcomeBuildingFoundation, final.Outcome)
	assert.Equal(t, "/sales?qualified=explorer", final.Redirect)
}

func TestServiceAnswerAfterCompletion(t *testing.T) {
	svc := newTestService(t)
	sess, _, err := svc.Start(context.Background(), "")
	require.NoError(t, err)
	answerPath(t, svc, sess.ID, 0)

	_, _, err = svc.Answer(context.Background(), sess.ID, 0)
	assert.ErrorIs(t, err, ErrSessionCompleted)
}

func TestServiceInvalidOption(t *testing.T) {
	svc := newTestService(t)
	sess, _, err := svc.Start(context.Background(), "")
	require.NoError(t, err)

	_, _, err = svc.Answer(context.Background(), sess.ID, 7)
	assert.ErrorIs(t, err, ErrInvalidOption)
	_, _, err = svc.Answer(context.Background(), sess.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestServiceUnknownSession(t *testing.T) {
	svc := newTestService(t)
	_, _, err := svc.Answer(context.Background(), "missing", 0)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestServiceTranscriptRecordsFullChat(t *testing.T) {
	svc := newTestService(t)
	sess, _, err := svc.Start(context.Background(), "")
	require.NoError(t, err)
	answerPath(t, svc, sess.ID, 1)

	msgs, err := svc.History(context.Background(), sess.ID, 0)
	require.NoError(t, err)
	// Six questions, six answers, one closing message.
	assert.Len(t, msgs, 13)
	assert.Equal(t, "bot", msgs[len(msgs)-1].Role)
}
