package graph

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sea/element"
	_ "sea/element/generic"
	_ "sea/element/material"
	"sea/system"
	"sea/types"
)

// triangle a → b → c 与 a → c，另有孤立的 d
func triangle(t *testing.T) *system.System {
	t.Helper()
	f, err := types.Bands([]float64{500, 1000}, 1)
	require.NoError(t, err)
	s := system.New(system.WithFrequency(f), system.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	_, err = s.AddMaterial("m", "MaterialFluid", element.Properties{"loss_factor": 0.01})
	require.NoError(t, err)
	for _, name := range []string{"a", "b", "c", "d"} {
		c, err := s.AddComponent(name, "ComponentGeneric", element.Properties{"material": "m"})
		require.NoError(t, err)
		require.NoError(t, c.Subsystem("SubsystemGeneric").Set("modal_density", 1.0))
	}
	_, err = s.AddJunction("j", "Junction", element.Properties{"components": []string{"a", "b", "c"}})
	require.NoError(t, err)
	couple := func(name, from, to string, clf []float64) {
		_, err := s.AddCoupling(name, "CouplingGeneric", element.Properties{
			"junction": "j", "subsystem_from": from + "_SubsystemGeneric", "subsystem_to": to + "_SubsystemGeneric", "clf": clf,
		})
		require.NoError(t, err)
	}
	couple("ab", "a", "b", []float64{0.02, 0.02})
	couple("bc", "b", "c", []float64{0.03, 0.03})
	couple("ac", "a", "c", []float64{0.0001, 0.05})
	_, err = s.AddExcitation("e", "ExcitationPower", element.Properties{"subsystem": "a_SubsystemGeneric", "power": 1.0})
	require.NoError(t, err)
	return s
}

const (
	sa = "a_SubsystemGeneric"
	sb = "b_SubsystemGeneric"
	sc = "c_SubsystemGeneric"
	sd = "d_SubsystemGeneric"
)

func TestHasPath(t *testing.T) {
	g, err := NewGraph(triangle(t))
	require.NoError(t, err)
	assert.Equal(t, 4, g.Len())

	ok, err := g.HasPath(sa, sc)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = g.HasPath(sc, sa)
	require.NoError(t, err)
	assert.False(t, ok, "耦合是有向的")
	ok, err = g.HasPath(sa, sd)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = g.HasPath(sa, "nowhere")
	assert.ErrorIs(t, err, types.ErrUnknownObject)
}

func TestPaths(t *testing.T) {
	g, err := NewGraph(triangle(t))
	require.NoError(t, err)
	paths, err := g.Paths(sa, sc)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, Path{Subsystems: []string{sa, sb, sc}, Couplings: []string{"ab", "bc"}}, paths[0])
	assert.Equal(t, Path{Subsystems: []string{sa, sc}, Couplings: []string{"ac"}}, paths[1])

	none, err := g.Paths(sa, sd)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestEnergyRatio(t *testing.T) {
	g, err := NewGraph(triangle(t))
	require.NoError(t, err)
	p := Path{Subsystems: []string{sa, sb, sc}, Couplings: []string{"ab", "bc"}}
	ratio, err := g.EnergyRatio(p)
	require.NoError(t, err)
	// tlf: a = 0.01+0.02+ac，b = 0.01+0.03，c = 0.01
	tlfA := []float64{0.0301, 0.08}
	for f := range ratio {
		want := 0.02 * 0.03 / (tlfA[f] * 0.04 * 0.01)
		assert.InEpsilon(t, want, ratio[f], 1e-9)
	}

	level, err := g.LevelDifference(p)
	require.NoError(t, err)
	assert.InDelta(t, -10*math.Log10(ratio[0]), level[0], 1e-9)

	energy, err := g.Energy(p)
	require.NoError(t, err)
	assert.InEpsilon(t, ratio[1]/(2*math.Pi*1000), energy[1], 1e-9)

	_, err = g.EnergyRatio(Path{Subsystems: []string{sc, sa}})
	assert.Error(t, err, "c 到 a 没有耦合")
	_, err = g.EnergyRatio(Path{})
	assert.Error(t, err)
}

func TestDominantPath(t *testing.T) {
	g, err := NewGraph(triangle(t))
	require.NoError(t, err)

	// 低频带直接耦合很弱，经 b 的路径占优
	p, ok, err := g.DominantPath(sa, sc, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{sa, sb, sc}, p.Subsystems)

	// 高频带直接耦合占优
	p, ok, err = g.DominantPath(sa, sc, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"ac"}, p.Couplings)

	_, ok, err = g.DominantPath(sa, sd, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = g.DominantPath(sa, sc, 5)
	assert.Error(t, err)
}

func TestGroups(t *testing.T) {
	s := triangle(t)
	_, err := s.AddCoupling("ca", "CouplingGeneric", element.Properties{
		"junction": "j", "subsystem_from": sc, "subsystem_to": sa, "clf": 0.001,
	})
	require.NoError(t, err)
	g, err := NewGraph(s)
	require.NoError(t, err)
	var sizes []int
	for _, group := range g.Groups() {
		sizes = append(sizes, len(group))
		if len(group) == 3 {
			assert.Equal(t, []string{sa, sb, sc}, group)
		}
	}
	assert.ElementsMatch(t, []int{3, 1}, sizes)
}
