package log

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestWithCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background(), "")

	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))

	incoming := "3F2504E0-4F89-11D3-9A0C-0305E82C3301"
	_, id = WithCorrelationID(context.Background(), incoming)
	assert.Equal(t, "3f2504e0-4f89-11d3-9a0c-0305e82c3301", id)

	_, id = WithCorrelationID(context.Background(), "não é um uuid")
	assert.NotEqual(t, "não é um uuid", id)
	assert.Len(t, id, 36)
}

func TestSetup(t *testing.T) {
	Setup("warn")
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())

	Setup("invalid")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())

	SetupTestLogger()
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestIsRelevantField(t *testing.T) {
	assert.True(t, isRelevantField("correlation_id"))
	assert.True(t, isRelevantField("report_id"))
	assert.True(t, isRelevantField("user_email"))
	assert.False(t, isRelevantField("remote_addr"))
}
