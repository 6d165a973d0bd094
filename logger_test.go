package emitter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf).WithField("b", 2).WithField("a", 1)

	logger.Infof("hello %s", "world")
	logger.Warnln("careful")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "INFO [a=1, b=2]: hello world")
	assert.Contains(t, lines[1], "WARN [a=1, b=2]: careful")
}

func TestWriterLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewWriterLogger(&buf)
	_ = parent.WithField("child", true)

	parent.Error("plain")

	assert.Contains(t, buf.String(), "ERROR: plain")
	assert.NotContains(t, buf.String(), "child")
}

func TestEmitter_LogsWithWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	e := New[string](
		WithLogger(NewWriterLogger(&buf)),
		WithIDGenerator(&sequenceIDs{}),
	)
	l := NewListener(func(any, ...any) { panic("boom") }).Named("bell")

	_, _ = e.On("ring", l)
	_ = e.Emit("ring")
	e.Off("ring", l)

	out := buf.String()
	assert.Contains(t, out, "DEBUG [event=ring, listener=bell, subscription=sub-1]: subscribed on listener")
	assert.Contains(t, out, "ERROR [event=ring, listener=bell, subscription=sub-1]: listener panicked: boom")
	assert.Contains(t, out, "unsubscribed on listener")
}

func TestLogrusLogger(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetLevel(logrus.DebugLevel)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	e := New[string](
		WithLogger(NewLogrusLogger(logrus.NewEntry(base))),
		WithIDGenerator(&sequenceIDs{}),
	)
	_, _ = e.When("tick", NewCondition(func(any, ...any) bool { return true }))
	_ = e.Emit("tick")

	out := buf.String()
	assert.Contains(t, out, "level=debug")
	assert.Contains(t, out, `msg="subscribed when listener"`)
	assert.Contains(t, out, `msg="condition met, unsubscribed"`)
	assert.Contains(t, out, "event=tick")
	assert.Contains(t, out, "subscription=sub-1")
}

func TestLogrusLogger_NilEntry(t *testing.T) {
	assert.NotNil(t, NewLogrusLogger(nil))
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	e := New[string](
		WithLogger(NewZerologLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))),
		WithIDGenerator(&sequenceIDs{}),
	)

	_, _ = e.On("tick", NewListener(func(any, ...any) {}))
	e.RemoveListeners("tick")

	out := buf.String()
	assert.Contains(t, out, `"level":"debug"`)
	assert.Contains(t, out, `"event":"tick"`)
	assert.Contains(t, out, `"subscription":"sub-1"`)
	assert.Contains(t, out, `"message":"subscribed on listener"`)
	assert.Contains(t, out, `"message":"removed 1 listener(s)"`)
}

func TestNoopLogger(t *testing.T) {
	logger := NoopLogger()
	assert.NotPanics(t, func() {
		logger.WithField("k", "v").Errorf("ignored %d", 1)
	})
}

func TestWriterLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf)

	logger.Debug("d", 1)
	logger.Debugf("d%d", 2)
	logger.Infoln("i", 3)
	logger.Warn("w")
	logger.Errorf("e%s", "!")
	logger.Errorln("e", "ln")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	for i, suffix := range []string{
		"DEBUG: d1",
		"DEBUG: d2",
		"INFO: i 3",
		"WARN: w",
		"ERROR: e!",
		"ERROR: e ln",
	} {
		assert.True(t, strings.HasSuffix(lines[i], suffix), "line %d: %q", i, lines[i])
	}
}
