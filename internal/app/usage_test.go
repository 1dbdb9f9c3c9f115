package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		v1, v2 string
		want   int
	}{
		{v1: "1.2.3", v2: "1.2.3", want: 0},
		{v1: "1.2.3", v2: "1.2.4", want: -1},
		{v1: "1.10.0", v2: "1.9.9", want: 1},
		{v1: "2.0.0", v2: "10.0.0", want: -1},
		{v1: "1.2", v2: "1.2.0", want: -1},
		{v1: "1.2.0.1", v2: "1.2.0", want: 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, compareVersions(tt.v1, tt.v2), "%s vs %s", tt.v1, tt.v2)
	}
}

func TestCheckForUpdates(t *testing.T) {
	oldVersion := Version
	Version = "1.2.3"
	t.Cleanup(func() { Version = oldVersion })

	tests := []struct {
		name    string
		tag     string
		wantMsg string
	}{
		{name: "newer release", tag: "v1.3.0", wantMsg: "Found newer version 1.3.0"},
		{name: "same release", tag: "1.2.3", wantMsg: "tcprobe is on the latest version: 1.2.3"},
		{name: "older release", tag: "v1.0.0", wantMsg: "is newer than the latest release 1.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := checkForUpdates(t.Context(), func(context.Context) (string, error) {
				return tt.tag, nil
			})
			require.NoError(t, err)
			assert.Contains(t, msg, tt.wantMsg)
		})
	}
}

func TestCheckForUpdates_Errors(t *testing.T) {
	_, err := checkForUpdates(t.Context(), func(context.Context) (string, error) {
		return "", errors.New("rate limited")
	})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "check for updates"))

	_, err = checkForUpdates(t.Context(), func(context.Context) (string, error) {
		return "nightly", nil
	})
	assert.ErrorContains(t, err, "does not match expected format")
}
