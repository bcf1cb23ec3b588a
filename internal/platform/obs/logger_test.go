package obs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestTimeLogsErrorWithRequestID(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := WithRequestID(context.Background(), zap.New(core), "abc")

	err := errors.New("boom")
	Time(ctx, "test.op")(&err)

	entries := logs.FilterMessage("op failed").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "test.op", fields["op"])
		assert.Equal(t, "abc", fields["req_id"])
		assert.Equal(t, "boom", fields["error"])
	}
	assert.Equal(t, "abc", RequestID(ctx))
}

func TestTimeSuccessLogsAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := WithLogger(context.Background(), zap.New(core))

	var err error
	Time(ctx, "test.ok")(&err)

	assert.Equal(t, 1, logs.FilterMessage("op done").Len())
}

func TestLoggerFallsBackToGlobal(t *testing.T) {
	assert.NotNil(t, Logger(context.Background()))
}
