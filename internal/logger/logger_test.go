package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestVerbosity(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetVerbosity(int(Info))
		SetOutput(os.Stderr)
	})

	t.Run("info hides debug", func(t *testing.T) {
		buf.Reset()
		SetVerbosity(int(Info))
		Infof("visible %d", 1)
		Debugf("hidden %d", 2)

		assert.Contains(t, buf.String(), "visible 1")
		assert.NotContains(t, buf.String(), "hidden 2")
	})

	t.Run("error only", func(t *testing.T) {
		buf.Reset()
		SetVerbosity(int(Error))
		Infof("quiet")
		Errorf("loud")

		assert.NotContains(t, buf.String(), "quiet")
		assert.Contains(t, buf.String(), "loud")
		assert.Contains(t, buf.String(), "level=error")
	})

	t.Run("trace shows everything", func(t *testing.T) {
		buf.Reset()
		SetVerbosity(int(Trace))
		Debugf("dbg")
		Tracef("trc")

		assert.Contains(t, buf.String(), "dbg")
		assert.Contains(t, buf.String(), "trc")
	})

	t.Run("fields", func(t *testing.T) {
		buf.Reset()
		SetVerbosity(int(Info))
		WithFields(logrus.Fields{"spot": 100.0}).Info("priced")

		assert.Contains(t, buf.String(), "spot=100")
	})
}

func TestToLogrusClamps(t *testing.T) {
	assert.Equal(t, logrus.ErrorLevel, toLogrus(-3))
	assert.Equal(t, logrus.InfoLevel, toLogrus(Info))
	assert.Equal(t, logrus.TraceLevel, toLogrus(9))
}
