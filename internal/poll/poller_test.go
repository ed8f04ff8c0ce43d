package poll

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/williampepple1/party-sheet-scraper/internal/config"
	"github.com/williampepple1/party-sheet-scraper/internal/extraction"
)

var testPoll = config.PollConfig{
	Interval:    800 * time.Millisecond,
	MaxAttempts: 5,
	MinInputs:   3,
}

func viewWithInputs(t *testing.T, n int) *extraction.View {
	t.Helper()
	view, err := extraction.ParseView(strings.NewReader(strings.Repeat(`<input name="attr_x">`, n)))
	require.NoError(t, err)
	return view
}

// sequenceFetch returns the given views in order, then the last one forever
func sequenceFetch(views ...*extraction.View) (Fetch, *int) {
	calls := 0
	return func(context.Context) (*extraction.View, error) {
		i := calls
		calls++
		if i >= len(views) {
			i = len(views) - 1
		}
		return views[i], nil
	}, &calls
}

func TestPoller_BecomesReady(t *testing.T) {
	ready := viewWithInputs(t, 3)
	fetch, calls := sequenceFetch(nil, viewWithInputs(t, 1), ready)
	clock := &VirtualClock{}

	res, err := NewPoller(testPoll, fetch).Run(context.Background(), clock)
	require.NoError(t, err)

	assert.Equal(t, Ready, res.State)
	assert.Same(t, ready, res.View)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, 3, res.Inputs)
	assert.Equal(t, 3, *calls)
	assert.Equal(t, 3*testPoll.Interval, clock.Elapsed(), "one interval before every check")
}

func TestPoller_TimesOut(t *testing.T) {
	fetch, calls := sequenceFetch(viewWithInputs(t, 2))
	clock := &VirtualClock{}

	res, err := NewPoller(testPoll, fetch).Run(context.Background(), clock)
	require.NoError(t, err)

	assert.Equal(t, TimedOut, res.State)
	assert.Nil(t, res.View)
	assert.Equal(t, testPoll.MaxAttempts, res.Attempts)
	assert.Equal(t, 2, res.Inputs)
	assert.Equal(t, testPoll.MaxAttempts, *calls)
	assert.Len(t, clock.Sleeps(), testPoll.MaxAttempts)
}

func TestPoller_FetchErrorsKeepWaiting(t *testing.T) {
	ready := viewWithInputs(t, 4)
	calls := 0
	fetch := func(context.Context) (*extraction.View, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("frame not attached")
		}
		return ready, nil
	}

	res, err := NewPoller(testPoll, fetch).Run(context.Background(), &VirtualClock{})
	require.NoError(t, err)

	assert.Equal(t, Ready, res.State)
	assert.EqualError(t, res.LastErr, "frame not attached")
	assert.Equal(t, 3, res.Attempts)
}

func TestPoller_FetchErrorsUntilTimeout(t *testing.T) {
	fetch := func(context.Context) (*extraction.View, error) {
		return nil, errors.New("no sheet")
	}

	res, err := NewPoller(testPoll, fetch).Run(context.Background(), &VirtualClock{})
	require.NoError(t, err)

	assert.Equal(t, TimedOut, res.State)
	assert.EqualError(t, res.LastErr, "no sheet")
}

func TestPoller_SingleShot(t *testing.T) {
	fetch, calls := sequenceFetch(viewWithInputs(t, 5))
	p := NewPoller(testPoll, fetch)
	assert.Equal(t, Waiting, p.State())

	assert.Equal(t, Ready, p.Check(context.Background()))
	assert.Equal(t, Ready, p.Check(context.Background()))

	res, err := p.Run(context.Background(), &VirtualClock{})
	require.NoError(t, err)
	assert.Equal(t, Ready, res.State)
	assert.Equal(t, 1, *calls)
	assert.Equal(t, 1, res.Attempts)
}

func TestPoller_ContextCancelled(t *testing.T) {
	fetch, calls := sequenceFetch(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := NewPoller(testPoll, fetch).Run(ctx, &VirtualClock{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Waiting, res.State)
	assert.Equal(t, 0, *calls)
}

func TestRealClock_Sleep(t *testing.T) {
	assert.NoError(t, RealClock{}.Sleep(context.Background(), time.Millisecond))
	assert.NoError(t, RealClock{}.Sleep(context.Background(), 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, RealClock{}.Sleep(ctx, time.Hour), context.Canceled)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "waiting", Waiting.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "timed out", TimedOut.String())
	assert.Equal(t, "State(7)", State(7).String())
}
