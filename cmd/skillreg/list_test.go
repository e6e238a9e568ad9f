package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListConfig(t *testing.T) {
	config := NewListConfig()
	assert.Empty(t, config.Category)
	assert.Empty(t, config.Filter)
	assert.False(t, config.JSONOutput)
}

func TestGetListConfigFromFlags(t *testing.T) {
	cmd := listCmd
	require.NoError(t, cmd.Flags().Set("category", "training"))
	require.NoError(t, cmd.Flags().Set("filter", "batch-*"))
	require.NoError(t, cmd.Flags().Set("json", "true"))
	defer func() {
		cmd.Flags().Set("category", "")
		cmd.Flags().Set("filter", "")
		cmd.Flags().Set("json", "false")
	}()

	config := getListConfigFromFlags(cmd)
	assert.Equal(t, "training", config.Category)
	assert.Equal(t, "batch-*", config.Filter)
	assert.True(t, config.JSONOutput)
}

func TestGetNewConfigFromFlags(t *testing.T) {
	cmd := newCmd
	require.NoError(t, cmd.Flags().Set("description", "When cache tuning is needed"))
	require.NoError(t, cmd.Flags().Set("author-name", "Test Author"))
	defer func() {
		cmd.Flags().Set("description", "")
		cmd.Flags().Set("author-name", "")
	}()

	config := getNewConfigFromFlags(cmd)
	assert.Equal(t, "When cache tuning is needed", config.Description)
	assert.Equal(t, "Test Author", config.AuthorName)
	assert.Empty(t, config.AuthorEmail)
}
