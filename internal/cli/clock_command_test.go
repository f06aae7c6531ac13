package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockCommand_In(t *testing.T) {
	app, _, out := setupTestApp(t)
	ctx := context.Background()
	require.NoError(t, NewProjectCommand(app).Add(ctx, "Worker", ""))
	out.Reset()

	cmd := NewClockCommand(app)

	require.NoError(t, cmd.In(ctx, "Worker", ""))
	assert.Equal(t, "Clocked in: Worker\n  Since 08:00 (1h 0m)\n", out.String())

	err := cmd.In(ctx, "Worker", "")
	require.Error(t, err)
	assert.Equal(t, "failed to clock in: the project is already clocked in", err.Error())

	err = cmd.In(ctx, "Android", "")
	require.Error(t, err)
	assert.Equal(t, "failed to clock in: project not found: Android", err.Error())
}

func TestClockCommand_Out(t *testing.T) {
	app, _, out := setupTestApp(t)
	ctx := context.Background()
	require.NoError(t, NewProjectCommand(app).Add(ctx, "Worker", ""))

	cmd := NewClockCommand(app)

	err := cmd.Out(ctx, "Worker", "")
	require.Error(t, err)
	assert.Equal(t, "failed to clock out: the project is not clocked in", err.Error())

	require.NoError(t, cmd.In(ctx, "Worker", ""))
	out.Reset()

	require.NoError(t, cmd.Out(ctx, "Worker", ""))
	assert.Equal(t, "Clocked out: Worker\n  #1 08:00 - 09:00 (1.00)\n", out.String())
}
