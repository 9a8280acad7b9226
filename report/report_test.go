package report

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sea/element"
	_ "sea/element/generic"
	_ "sea/element/material"
	"sea/system"
	"sea/types"
)

func solved(t *testing.T, centers ...float64) *system.System {
	t.Helper()
	f, err := types.Bands(centers, 1)
	require.NoError(t, err)
	s := system.New(system.WithFrequency(f), system.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	_, err = s.AddMaterial("m", "MaterialFluid", element.Properties{"loss_factor": 0.01})
	require.NoError(t, err)
	for _, name := range []string{"a", "b"} {
		c, err := s.AddComponent(name, "ComponentGeneric", element.Properties{"material": "m"})
		require.NoError(t, err)
		require.NoError(t, c.Subsystem("SubsystemGeneric").Set("modal_density", 1.0))
	}
	_, err = s.AddJunction("j", "Junction", element.Properties{"components": []string{"a", "b"}})
	require.NoError(t, err)
	_, err = s.AddCoupling("ab", "CouplingGeneric", element.Properties{
		"junction": "j", "subsystem_from": "a_SubsystemGeneric", "subsystem_to": "b_SubsystemGeneric", "clf": 0.005,
	})
	require.NoError(t, err)
	_, err = s.AddExcitation("e", "ExcitationPower", element.Properties{"subsystem": "a_SubsystemGeneric", "power": 1.0})
	require.NoError(t, err)
	_, err = s.Solve(context.Background())
	require.NoError(t, err)
	return s
}

func TestQuery(t *testing.T) {
	s := solved(t, 500, 1000, 2000)
	tab, err := Query(s, nil, "modal_energy")
	require.NoError(t, err)
	assert.Equal(t, []string{"a_SubsystemGeneric", "b_SubsystemGeneric"}, tab.Names)
	assert.Equal(t, []float64{500, 1000, 2000}, tab.Centers)
	assert.True(t, tab.Positive())
	a, ok := tab.Column("a_SubsystemGeneric")
	require.True(t, ok)
	b, _ := tab.Column("b_SubsystemGeneric")
	for f := range a {
		assert.Greater(t, a[f], b[f])
	}

	levels, err := Query(s, []string{"ab"}, "clf_level")
	require.NoError(t, err)
	assert.InDelta(t, 10*9.69897, levels.Values[0][0], 1e-3)

	_, err = Query(s, []string{"nobody"}, "energy")
	assert.ErrorIs(t, err, types.ErrUnknownObject)
	_, err = Query(s, []string{"m"}, "no_such_series")
	assert.ErrorIs(t, err, types.ErrInvalidProperty)
}

func TestWriteTable(t *testing.T) {
	s := solved(t, 500, 1000)
	tab, err := Query(s, nil, "modal_energy")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, tab))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "a_SubsystemGeneric")
	assert.Contains(t, lines[1], "500 Hz")
	assert.Contains(t, lines[2], "1 kHz")
	assert.Contains(t, lines[1], "21.22")
}

func TestPlotPNG(t *testing.T) {
	for _, centers := range [][]float64{{250, 500, 1000, 2000}, {1000}} {
		s := solved(t, centers...)
		tab, err := Query(s, nil, "energy")
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, PlotPNG(&buf, tab, 640, 480))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
	}

	// b 没有输入功率，纵轴用线性坐标
	s := solved(t, 250, 500)
	tab, err := Query(s, nil, "power_input")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Plot(&buf, tab, 300, 200, "svg"))
	assert.Contains(t, buf.String(), "<svg")
}

func TestRenderHTML(t *testing.T) {
	s := solved(t, 500, 1000)
	tab, err := Query(s, nil, "modal_energy")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, tab))
	assert.Contains(t, buf.String(), "echarts")
	assert.Contains(t, buf.String(), "b_SubsystemGeneric")

	b, _ := s.Object("b")
	b.Entity().Disable(false)
	net := NetworkOf(s, 0)
	assert.Len(t, net.Subsystems, 2)
	assert.True(t, net.Excluded["b_SubsystemGeneric"])
	require.Len(t, net.Links, 1)
	assert.InDelta(t, 0.005, net.Links[0].CLF, 1e-15)

	rec := httptest.NewRecorder()
	(&Charts{Table: tab, Network: net}).Handler(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "a_SubsystemGeneric")
}
