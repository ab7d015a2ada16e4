package logging_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkoosis/sift/internal/logging"
)

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	var quiet bytes.Buffer
	log := logging.New(&quiet, false)
	log.Info("Skipping input", "input", "a.log")
	log.V(1).Info("Scanned source", "records", 3)

	assert.Contains(t, quiet.String(), `msg="Skipping input" input=a.log`)
	assert.NotContains(t, quiet.String(), "Scanned source")

	var loud bytes.Buffer
	logging.New(&loud, true).V(1).Info("Scanned source", "records", 3)
	assert.Contains(t, loud.String(), "level=DEBUG")
	assert.Contains(t, loud.String(), "records=3")
}
