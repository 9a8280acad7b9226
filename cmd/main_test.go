package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pair = `
frequency:
  center: [500, 1000]
  octave: 1
materials:
  - {name: m, model: MaterialFluid, loss_factor: 0.01}
components:
  - {name: a, model: ComponentGeneric, material: m}
  - {name: b, model: ComponentGeneric, material: m}
subsystems:
  - {name: a_SubsystemGeneric, model: SubsystemGeneric, component: a, modal_density: 1}
  - {name: b_SubsystemGeneric, model: SubsystemGeneric, component: b, modal_density: 1}
junctions:
  - {name: j, model: Junction, components: [a, b]}
couplings:
  - {name: ab, model: CouplingGeneric, junction: j, subsystem_from: a_SubsystemGeneric, subsystem_to: b_SubsystemGeneric, clf: 0.005}
  - {name: ba, model: CouplingGeneric, junction: j, subsystem_from: b_SubsystemGeneric, subsystem_to: a_SubsystemGeneric, clf: 0.005}
excitations:
  - {name: e, model: ExcitationPower, subsystem: a_SubsystemGeneric, power: 1}
`

// workspace 模型文件、配置文件与数据库放在临时目录
func workspace(t *testing.T) (dir, model, conf string) {
	t.Helper()
	dir = t.TempDir()
	model = filepath.Join(dir, "pair.yaml")
	require.NoError(t, os.WriteFile(model, []byte(pair), 0o644))
	conf = filepath.Join(dir, "sea.yaml")
	doc := "logging:\n  level: error\nstore:\n  path: " + filepath.Join(dir, "runs.db") + "\n"
	require.NoError(t, os.WriteFile(conf, []byte(doc), 0o644))
	return dir, model, conf
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

func TestSolveAndRuns(t *testing.T) {
	dir, model, conf := workspace(t)
	solved := filepath.Join(dir, "solved.yaml")

	out, err := run(t, "solve", model, "--config", conf, "--out", solved, "--record")
	require.NoError(t, err)
	assert.Contains(t, out, "a_SubsystemGeneric")
	assert.Contains(t, out, "1 kHz")
	assert.FileExists(t, solved)

	out, err = run(t, "runs", "--config", conf)
	require.NoError(t, err)
	assert.Contains(t, out, model)

	out, err = run(t, "info", solved, "--config", conf, "--attribute", "energy_level", "--objects", "b_SubsystemGeneric")
	require.NoError(t, err)
	assert.Contains(t, out, "b_SubsystemGeneric")
}

func TestInfoList(t *testing.T) {
	_, model, conf := workspace(t)
	out, err := run(t, "info", model, "--config", conf, "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "CouplingGeneric")

	out, err = run(t, "info", model, "--config", conf, "--attribute", "", "--objects", "ab")
	require.NoError(t, err)
	assert.Contains(t, out, "clf_level")
}

func TestPaths(t *testing.T) {
	_, model, conf := workspace(t)
	out, err := run(t, "paths", model, "--config", conf, "--from", "a_SubsystemGeneric", "--to", "b_SubsystemGeneric")
	require.NoError(t, err)
	assert.Contains(t, out, "a_SubsystemGeneric → b_SubsystemGeneric")
	assert.Contains(t, out, "主要路径")

	_, err = run(t, "paths", model, "--config", conf, "--from", "a_SubsystemGeneric", "--to", "nowhere")
	assert.Error(t, err)
}

func TestPlot(t *testing.T) {
	dir, model, conf := workspace(t)
	png := filepath.Join(dir, "power.png")
	_, err := run(t, "plot", model, "--config", conf, "--attribute", "power_input", "--out", png)
	require.NoError(t, err)
	data, err := os.ReadFile(png)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	html := filepath.Join(dir, "power.html")
	_, err = run(t, "plot", model, "--config", conf, "--attribute", "power_input", "--out", html)
	require.NoError(t, err)
	data, err = os.ReadFile(html)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<html")
}

func TestBadConfig(t *testing.T) {
	_, model, _ := workspace(t)
	_, err := run(t, "solve", model, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
