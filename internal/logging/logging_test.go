package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesTextWithLevelFilter(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	log, err := New("warn", &out)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())

	log.Info("hidden")
	log.WithField("country", "USA").Warn("registry fallback")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "level=warning")
	assert.Contains(t, out.String(), `msg="registry fallback"`)
	assert.Contains(t, out.String(), "country=USA")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New("chatty", nil)
	assert.ErrorContains(t, err, "parse log level")
}
