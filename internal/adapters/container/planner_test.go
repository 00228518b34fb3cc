package container_test

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zmkbuild/internal/adapters/container"
	"go.trai.ch/zmkbuild/internal/core/domain"
)

const root = "/home/me/zmk-config"

var toolchain = domain.Toolchain{Runtime: "docker", Image: "zmkfirmware/zmk-build-arm:stable"}

func TestPlanner_Plan_Args(t *testing.T) {
	plan, err := container.NewPlanner().Plan(domain.BuildTarget{Board: "nice_nano_v2", Shield: "corne_left"}, root, toolchain)
	require.NoError(t, err)

	assert.Equal(t, "docker", plan.Executable)
	assert.Equal(t, []string{
		"run", "--rm",
		"-v", "/home/me/zmk-config:/workspace",
		"-w", "/workspace",
		"zmkfirmware/zmk-build-arm:stable",
		"sh", "-c", plan.Script,
	}, plan.Args)
	assert.Equal(t, "manual_build/artifacts/corne-left", plan.BuildDir)
	assert.Equal(t, "/home/me/zmk-config/manual_build/artifacts/corne-left", plan.HostBuildDir)

	g := goldie.New(t)
	g.Assert(t, "script_basic", []byte(plan.Script+"\n"))
}

func TestPlanner_Plan_ShieldWithSpacesAndUnderscores(t *testing.T) {
	plan, err := container.NewPlanner().Plan(domain.BuildTarget{Board: "nice_nano_v2", Shield: "my shield_v2"}, root, toolchain)
	require.NoError(t, err)

	assert.Equal(t, "manual_build/artifacts/my-shield-v2", plan.BuildDir)
	assert.Contains(t, plan.Script, `-DSHIELD="my shield_v2"`)
	assert.Contains(t, plan.Script, `-d "manual_build/artifacts/my-shield-v2"`)
}

func TestPlanner_Plan_Snippet(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		plan, err := container.NewPlanner().Plan(domain.BuildTarget{Board: "nice_nano_v2", Shield: "corne_left"}, root, toolchain)
		require.NoError(t, err)
		assert.NotContains(t, plan.Script, "-S ")
	})

	t.Run("present before separator", func(t *testing.T) {
		target := domain.BuildTarget{Board: "nice_nano_v2", Shield: "corne_left", Snippet: "studio-rpc-usb-uart"}
		plan, err := container.NewPlanner().Plan(target, root, toolchain)
		require.NoError(t, err)

		snippetAt := strings.Index(plan.Script, `-S "studio-rpc-usb-uart"`)
		separatorAt := strings.Index(plan.Script, " -- ")
		require.NotEqual(t, -1, snippetAt)
		require.NotEqual(t, -1, separatorAt)
		assert.Less(t, snippetAt, separatorAt)
	})
}

func TestPlanner_Plan_CMakeArgsVerbatim(t *testing.T) {
	target := domain.BuildTarget{
		Board:     "xiao_ble",
		Shield:    "charybdis_dongle prospector_adapter",
		Snippet:   "studio-rpc-usb-uart",
		CMakeArgs: `-DCONFIG_ZMK_STUDIO=y -DCONFIG_ZMK_STUDIO_LOCKING=n`,
	}
	plan, err := container.NewPlanner().Plan(target, root, toolchain)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(plan.Script, ` -DSHIELD="charybdis_dongle prospector_adapter" -DCONFIG_ZMK_STUDIO=y -DCONFIG_ZMK_STUDIO_LOCKING=n`))

	g := goldie.New(t)
	g.Assert(t, "script_full", []byte(plan.Script+"\n"))
}

func TestPlanner_Plan_StepOrder(t *testing.T) {
	plan, err := container.NewPlanner().Plan(domain.BuildTarget{Board: "nice_nano_v2", Shield: "corne_left"}, root, toolchain)
	require.NoError(t, err)

	steps := strings.Split(plan.Script, " && ")
	require.Len(t, steps, 4)
	assert.Equal(t, "[ -d .west ] || west init -l config/", steps[0])
	assert.Equal(t, "west update", steps[1])
	assert.Equal(t, "west zephyr-export", steps[2])
	assert.True(t, strings.HasPrefix(steps[3], "west build -s zmk/app"))
	assert.Contains(t, steps[3], "-DZMK_CONFIG=/workspace/config")
}

func TestPlanner_Plan_IsDeterministic(t *testing.T) {
	target := domain.BuildTarget{Board: "nice_nano_v2", Shield: "corne_left", Snippet: "studio-rpc-usb-uart"}
	planner := container.NewPlanner()

	first, err := planner.Plan(target, root, toolchain)
	require.NoError(t, err)
	second, err := planner.Plan(target, root, toolchain)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.Argv(), second.Argv())
}

func TestPlanner_Plan_UsesToolchain(t *testing.T) {
	plan, err := container.NewPlanner().Plan(
		domain.BuildTarget{Board: "nice_nano_v2", Shield: "corne_left"},
		root,
		domain.Toolchain{Runtime: "podman", Image: "ghcr.io/me/zmk:dev"},
	)
	require.NoError(t, err)

	assert.Equal(t, "podman", plan.Executable)
	assert.Contains(t, plan.Args, "ghcr.io/me/zmk:dev")
}

func TestPlanner_Plan_QualifiedBoard(t *testing.T) {
	for _, board := range []string{"nice_nano//zmk", "nrf52840dk/nrf52840"} {
		t.Run(board, func(t *testing.T) {
			plan, err := container.NewPlanner().Plan(domain.BuildTarget{Board: board, Shield: "corne_left"}, root, toolchain)
			require.NoError(t, err)

			assert.Equal(t, "manual_build/artifacts/corne-left", plan.BuildDir)
			assert.Contains(t, plan.Script, " -b "+board+" -- ")
		})
	}
}

func TestPlanner_Plan_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		target domain.BuildTarget
		root   string
	}{
		{"missing board", domain.BuildTarget{Shield: "corne_left"}, root},
		{"missing shield", domain.BuildTarget{Board: "nice_nano_v2"}, root},
		{"slash in shield", domain.BuildTarget{Board: "nice_nano_v2", Shield: "../corne"}, root},
		{"relative root", domain.BuildTarget{Board: "nice_nano_v2", Shield: "corne_left"}, "zmk-config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := container.NewPlanner().Plan(tt.target, tt.root, toolchain)
			require.ErrorIs(t, err, domain.ErrInvalidTarget)
			assert.Nil(t, plan)
		})
	}
}
