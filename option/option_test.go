package option

import (
	"github.com/stretchr/testify/assert"
	"github.com/viant/csvx/config"
	"log/slog"
	"testing"
)

func TestNewOptions(t *testing.T) {
	options := NewOptions()
	assert.Equal(t, config.Default(), options.GetConfig())
	assert.Equal(t, Deferred, options.GetLayout(Deferred))
	assert.Equal(t, Spread, options.GetLayout(Spread))
	assert.Equal(t, Steady, options.GetMode())
	assert.Nil(t, options.GetLogger())

	cfg := config.Default()
	cfg.NullMarker = "NULL"
	logger := slog.Default()
	options = NewOptions(WithConfig(cfg), WithLayout(Spread), WithMode(AdHoc), WithLogger(logger))
	assert.Equal(t, "NULL", options.GetConfig().NullMarker)
	assert.Equal(t, Spread, options.GetLayout(Deferred))
	assert.Equal(t, AdHoc, options.GetMode())
	assert.True(t, logger == options.GetLogger())

	applied := options.Apply(WithMode(Steady))
	assert.Equal(t, Steady, applied.GetMode())
	assert.Equal(t, AdHoc, options.GetMode())
	assert.Equal(t, "adhoc", AdHoc.String())
	assert.Equal(t, "deferred", Deferred.String())
}
