package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"api-mirror/core/config"
	"api-mirror/core/entity"
	"api-mirror/core/reconcile"
	"api-mirror/core/remote/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseServiceID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "2555417777820", want: 2555417777820},
		{raw: "7", want: 7},
		{raw: "0", wantErr: true},
		{raw: "-3", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			id, err := parseServiceID("source", tt.raw)
			if tt.wantErr {
				assert.ErrorContains(t, err, "invalid source service id")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestApplyFlags(t *testing.T) {
	t.Run("FlagsOverrideConfig", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Source.URL = "https://env@source.example.com"
		cfg.Destination.URL = "https://env@dest.example.com"

		err := applyFlags(cfg, endpointFlags{destination: "https://flag@dest.example.com"})

		require.NoError(t, err)
		assert.Equal(t, "https://env@source.example.com", cfg.Source.URL)
		assert.Equal(t, "https://flag@dest.example.com", cfg.Destination.URL)
	})

	t.Run("MissingSource", func(t *testing.T) {
		err := applyFlags(&config.Config{}, endpointFlags{destination: "https://t@dest.example.com"})
		assert.ErrorIs(t, err, errMissingURL)
		assert.ErrorContains(t, err, "SOURCE_URL")
	})

	t.Run("MissingDestination", func(t *testing.T) {
		err := applyFlags(&config.Config{}, endpointFlags{source: "https://t@source.example.com"})
		assert.ErrorIs(t, err, errMissingURL)
		assert.ErrorContains(t, err, "DESTINATION_URL")
	})
}

func TestConfirmDestructiveAction(t *testing.T) {
	tests := []struct {
		name  string
		input string
		yes   bool
		want  bool
	}{
		{name: "yes flag", yes: true, want: true},
		{name: "typed yes", input: "yes\n", want: true},
		{name: "typed yes without newline", input: "yes", want: true},
		{name: "typed y", input: "y\n", want: false},
		{name: "empty input", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got := confirmDestructiveAction(strings.NewReader(tt.input), &out, tt.yes)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, out.String())
		})
	}
}

func TestPrintReconcileReport_LimitsSampleActions(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	report := &reconcile.Report{Error: "boom"}
	for i := 0; i < 7; i++ {
		report.Actions = append(report.Actions, reconcile.Action{Type: reconcile.ActionCreateMetric, Key: "m"})
	}

	printReconcileReport(zap.New(core), report)

	assert.Equal(t, 1, logs.FilterMessage("Reconciliation report").Len())
	assert.Equal(t, 5, logs.FilterMessage("Sample action").Len())
	more := logs.FilterMessage("Additional actions not shown").All()
	require.Len(t, more, 1)
	assert.EqualValues(t, 2, more[0].ContextMap()["count"])
	assert.Equal(t, 1, logs.FilterMessage("Run stopped early").Len())
}

func TestRunEngine(t *testing.T) {
	source := memory.New(1000)
	target := memory.New(500000)
	sourceID := source.AddService(entity.Fields{entity.FieldName: "Echo", entity.FieldSystemName: "echo"})
	targetID := target.AddService(entity.Fields{entity.FieldName: "Copy", entity.FieldSystemName: "echo_copy"})
	core, logs := observer.New(zapcore.InfoLevel)
	rt := &runtime{cfg: &config.Config{}, logger: zap.New(core), source: source, target: target}

	err := runEngine(context.Background(), rt, sourceID, targetID, reconcile.Options{DryRun: true})
	require.NoError(t, err)
	assert.Empty(t, target.Calls())
	assert.Equal(t, 1, logs.FilterMessage("Dry-run mode: No changes were made.").Len())

	err = runEngine(context.Background(), rt, sourceID, 42, reconcile.Options{})
	assert.ErrorContains(t, err, "reconciliation of service 1000 into 42 failed")
}
