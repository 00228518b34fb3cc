package wiring_test

import (
	"context"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zmkbuild/internal/app"
	_ "go.trai.ch/zmkbuild/internal/wiring"
)

// TestGraftComponents ensures every node the CLI needs is registered and resolvable.
func TestGraftComponents(t *testing.T) {
	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	require.NotNil(t, components)

	assert.NotNil(t, components.App)
	assert.NotNil(t, components.Logger)
}
