package system

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sea/balance"
	"sea/element"
	_ "sea/element/beam"
	_ "sea/element/coupling"
	_ "sea/element/excitation"
	_ "sea/element/generic"
	_ "sea/element/material"
	"sea/types"
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newSystem(t *testing.T, opts []Option, centers ...float64) *System {
	t.Helper()
	f, err := types.Bands(centers, 1)
	require.NoError(t, err)
	return New(append([]Option{WithFrequency(f), WithLogger(quiet())}, opts...)...)
}

func names[T element.Object](seq iter.Seq[T]) []string {
	var out []string
	for obj := range seq {
		out = append(out, obj.Name())
	}
	return out
}

// twoSubsystems 两个给定模态密度的子系统，a → b 单向耦合，a 上有输入功率
func twoSubsystems(t *testing.T, opts ...Option) *System {
	t.Helper()
	s := newSystem(t, opts, 1000)
	_, err := s.AddMaterial("m", "MaterialFluid", element.Properties{"loss_factor": 0.01})
	require.NoError(t, err)
	for _, name := range []string{"a", "b"} {
		_, err := s.AddComponent(name, "ComponentGeneric", element.Properties{"material": "m"})
		require.NoError(t, err)
	}
	a, err := s.Object("a_SubsystemGeneric")
	require.NoError(t, err)
	require.NoError(t, a.Entity().Set("modal_density", 0.5))
	b, err := s.Object("b_SubsystemGeneric")
	require.NoError(t, err)
	require.NoError(t, b.Entity().Set("modal_density", 2.0))
	_, err = s.AddJunction("j", "Junction", element.Properties{"components": []string{"a", "b"}})
	require.NoError(t, err)
	_, err = s.AddCoupling("c", "CouplingGeneric", element.Properties{
		"junction": "j", "subsystem_from": "a_SubsystemGeneric", "subsystem_to": "b_SubsystemGeneric", "clf": 0.003,
	})
	require.NoError(t, err)
	_, err = s.AddExcitation("e", "ExcitationPower", element.Properties{"subsystem": "a_SubsystemGeneric", "power": 1.0})
	require.NoError(t, err)
	return s
}

func TestNameUniqueness(t *testing.T) {
	s := newSystem(t, nil, 1000)
	for range 4 {
		_, err := s.AddMaterial("steel", "MaterialSolid", nil)
		require.NoError(t, err)
	}
	got := names(s.Materials())
	assert.Equal(t, []string{"steel", "steel1", "steel2", "steel3"}, got)
	require.Len(t, s.Warnings(), 3, "每次重名一条警告")
	var w *types.DuplicateNameWarning
	require.ErrorAs(t, s.Warnings()[0], &w)
	assert.Equal(t, "steel", w.Proposed)
	assert.Equal(t, "steel1", w.Assigned)
	uniq := slices.Compact(slices.Sorted(slices.Values(got)))
	assert.Len(t, uniq, len(got))
}

func TestBeamScenario(t *testing.T) {
	s := newSystem(t, nil, 500, 1000, 2000, 4000, 8000)
	steel, err := s.AddMaterial("steel", "MaterialSolid", element.Properties{
		"density":     2000,
		"loss_factor": []float64{0.2, 0.2, 0.2, 0.2, 0.2},
		"young":       200e9,
		"poisson":     0.3,
	})
	require.NoError(t, err)
	beam, err := s.AddComponent("beam1", "Component1DBeam", element.Properties{
		"length": 2.0, "width": 0.1, "height": 0.2, "material": "steel",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, s.Len())
	assert.Equal(t, []string{"beam1"}, names(steel.LinkedComponents()))
	assert.Equal(t, []string{"beam1_SubsystemLong", "beam1_SubsystemBend", "beam1_SubsystemShear"}, names(beam.LinkedSubsystems()))
	assert.Len(t, slices.Collect(s.Subsystems()), 3)

	long := beam.Subsystem("SubsystemLong")
	require.NotNil(t, long)
	n, err := long.ModalDensity()
	require.NoError(t, err)
	want := 2.0 / (math.Pi * math.Sqrt(200e9/2000))
	for i := range n {
		assert.InEpsilon(t, want, n[i], 1e-12, "纵波模态密度 n = L/(π·c_L)")
	}
}

func TestSolveTwoSubsystems(t *testing.T) {
	s := twoSubsystems(t)
	res, err := s.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.StateSolved, s.State())
	assert.Equal(t, []string{"a_SubsystemGeneric", "b_SubsystemGeneric"}, res.Names)

	omega := 2 * math.Pi * 1000
	ea := (1 / omega) / ((0.01 + 0.003) * 0.5)
	eb := 0.003 * 0.5 * ea / (0.01 * 2.0)

	a, _ := s.Object("a_SubsystemGeneric")
	b, _ := s.Object("b_SubsystemGeneric")
	got, err := a.(*element.Subsystem).ModalEnergy()
	require.NoError(t, err)
	assert.InEpsilon(t, ea, got[0], 1e-9)
	got, err = b.(*element.Subsystem).ModalEnergy()
	require.NoError(t, err)
	assert.InEpsilon(t, eb, got[0], 1e-9)

	// 功率守恒: 输入 = 两个子系统的阻尼耗散
	energyA, _ := a.(*element.Subsystem).Energy()
	energyB, _ := b.(*element.Subsystem).Energy()
	assert.InEpsilon(t, 1.0, omega*0.01*(energyA[0]+energyB[0]), 1e-9)
}

func TestSolveParallelMatchesSequential(t *testing.T) {
	seq := twoSubsystems(t)
	par := twoSubsystems(t, WithSolver(balance.Solver{Parallel: true, Workers: 2}))
	r1, err := seq.Solve(context.Background())
	require.NoError(t, err)
	r2, err := par.Solve(context.Background())
	require.NoError(t, err)
	for i := range r1.Energy {
		assert.InDeltaSlice(t, r1.Energy[i], r2.Energy[i], 1e-18)
	}
	assert.NotEqual(t, r1.ID, r2.ID)
}

func TestSolveSingular(t *testing.T) {
	s := newSystem(t, nil, 1000)
	_, err := s.AddMaterial("m", "MaterialFluid", nil)
	require.NoError(t, err)
	_, err = s.AddComponent("a", "ComponentGeneric", element.Properties{"material": "m"})
	require.NoError(t, err)
	a, _ := s.Object("a_SubsystemGeneric")
	require.NoError(t, a.Entity().Set("modal_density", 1.0))
	_, err = s.AddExcitation("e", "ExcitationPower", element.Properties{"subsystem": a, "power": 1.0})
	require.NoError(t, err)

	_, err = s.Solve(context.Background())
	require.ErrorIs(t, err, types.ErrSingularSystem)
	var se *types.SingularSystemError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 0, se.Band)
	assert.Equal(t, 1000.0, se.Frequency)
	assert.Equal(t, types.StateUnsolved, s.State())
	energy, _ := a.(*element.Subsystem).ModalEnergy()
	assert.Equal(t, []float64{0}, energy, "失败时不写回")
}

func TestSolveAmbiguousCoupling(t *testing.T) {
	s := twoSubsystems(t)
	_, err := s.AddCoupling("c", "CouplingGeneric", element.Properties{
		"junction": "j", "subsystem_from": "a_SubsystemGeneric", "subsystem_to": "b_SubsystemGeneric", "clf": 0.001,
	})
	require.NoError(t, err)
	_, err = s.Solve(context.Background())
	require.ErrorIs(t, err, types.ErrAmbiguousCoupling)

	// 禁用其中一个后不再歧义
	c1, _ := s.Object("c1")
	c1.Entity().Disable(false)
	_, err = s.Solve(context.Background())
	require.NoError(t, err)
}

func TestSolveDisabledBandAndClean(t *testing.T) {
	s := twoSubsystems(t)
	f := s.Frequency().Clone()
	f.Center = []float64{500, 1000}
	f.Lower = []float64{354, 707}
	f.Upper = []float64{707, 1414}
	f.Enabled = []bool{false, true}
	require.NoError(t, s.SetFrequency(f))

	_, err := s.Solve(context.Background())
	require.NoError(t, err)
	a, _ := s.Object("a_SubsystemGeneric")
	energy, err := a.(*element.Subsystem).ModalEnergy()
	require.NoError(t, err)
	assert.Zero(t, energy[0])
	assert.Positive(t, energy[1])

	s.Clean()
	energy, _ = a.(*element.Subsystem).ModalEnergy()
	assert.Equal(t, []float64{0, 0}, energy)
	assert.Equal(t, types.StateUnsolved, s.State())
}

func TestSolveExcludesDisabled(t *testing.T) {
	s := twoSubsystems(t)
	b, _ := s.Object("b")
	b.Entity().Disable(false)
	res, err := s.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a_SubsystemGeneric"}, res.Names)
	// 耦合的目标不再 included，a 的总损耗只剩阻尼
	a, _ := s.Object("a_SubsystemGeneric")
	energy, _ := a.(*element.Subsystem).ModalEnergy()
	assert.InEpsilon(t, 1/(2*math.Pi*1000)/(0.01*0.5), energy[0], 1e-9)
}

func TestSolveCancelled(t *testing.T) {
	s := twoSubsystems(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Solve(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, types.StateUnsolved, s.State())
}

func TestRemoveSubsystemCascade(t *testing.T) {
	s := twoSubsystems(t)
	before := s.Len()
	a, _ := s.Object("a")
	require.NoError(t, s.Remove("a_SubsystemGeneric"))

	_, err := s.Object("c")
	assert.ErrorIs(t, err, types.ErrUnknownObject)
	_, err = s.Object("e")
	assert.ErrorIs(t, err, types.ErrUnknownObject)
	assert.Empty(t, names(a.(*element.Component).LinkedSubsystems()))
	assert.Equal(t, before-3, s.Len())

	b, _ := s.Object("b_SubsystemGeneric")
	assert.Empty(t, names(b.(*element.Subsystem).CouplingsTo()))
	j, _ := s.Object("j")
	assert.Empty(t, names(j.(*element.Junction).LinkedCouplings()))
}

func TestRemoveMaterialCascade(t *testing.T) {
	s := twoSubsystems(t)
	require.NoError(t, s.Remove("m"))
	// 只剩连接
	assert.Equal(t, []string{"j"}, names(s.Objects()))
	j, _ := s.Object("j")
	assert.Empty(t, names(j.(*element.Junction).Components()))
	assert.ErrorIs(t, s.Remove("m"), types.ErrUnknownObject)
}

func TestRemoveComponentLeavesJunction(t *testing.T) {
	s := twoSubsystems(t)
	require.NoError(t, s.Remove("a"))
	j, _ := s.Object("j")
	assert.Equal(t, []string{"b"}, names(j.(*element.Junction).Components()))
	assert.Equal(t, []string{"m", "b", "b_SubsystemGeneric", "j"}, names(s.Objects()))
}

func TestUnknownModel(t *testing.T) {
	s := newSystem(t, nil, 1000)
	_, err := s.AddMaterial("x", "Unobtainium", nil)
	require.ErrorIs(t, err, types.ErrUnknownModel)
	_, err = s.Add(types.KindSubsystem, "x", "SubsystemLong", nil)
	require.ErrorIs(t, err, types.ErrUnknownModel)
	assert.Zero(t, s.Len())
}

func TestViewsAreLive(t *testing.T) {
	s := newSystem(t, nil, 1000)
	materials := s.Materials()
	assert.Empty(t, names(materials))
	_, err := s.AddMaterial("air", "MaterialGas", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"air"}, names(materials))
}

func TestUpdateCouplingsAndSolveBeams(t *testing.T) {
	s := newSystem(t, nil, 250, 500, 1000)
	_, err := s.AddMaterial("steel", "MaterialSolid", element.Properties{
		"density": 7800, "young": 210e9, "poisson": 0.3, "loss_factor": 0.01,
	})
	require.NoError(t, err)
	for _, name := range []string{"b1", "b2"} {
		_, err := s.AddComponent(name, "Component1DBeam", element.Properties{
			"material": "steel", "length": 1.5, "width": 0.05, "height": 0.01,
		})
		require.NoError(t, err)
	}
	_, err = s.AddJunction("j", "Junction", element.Properties{"shape": "Point", "components": []string{"b1", "b2"}})
	require.NoError(t, err)

	created, err := s.UpdateCouplings("j")
	require.NoError(t, err)
	assert.Len(t, created, 6)
	again, err := s.UpdateCouplings("j")
	require.NoError(t, err)
	assert.Empty(t, again, "已存在的耦合不重复创建")

	c, _ := s.Object("j_b1_SubsystemBend_b2_SubsystemBend")
	require.NotNil(t, c)
	r := c.(*element.Coupling).Reciprocal()
	require.NotNil(t, r)
	assert.Equal(t, "j_b2_SubsystemBend_b1_SubsystemBend", r.Name())

	clf, err := c.(*element.Coupling).CLF()
	require.NoError(t, err)
	for _, v := range clf {
		assert.Positive(t, v)
	}

	_, err = s.AddExcitation("f", "ExcitationPointForce", element.Properties{"subsystem": "b1_SubsystemBend", "force": 1.0})
	require.NoError(t, err)
	_, err = s.Solve(context.Background())
	require.NoError(t, err)

	b1, _ := s.Object("b1_SubsystemBend")
	b2, _ := s.Object("b2_SubsystemBend")
	e1, _ := b1.(*element.Subsystem).Energy()
	e2, _ := b2.(*element.Subsystem).Energy()
	for i := range e1 {
		assert.Positive(t, e2[i])
		assert.Greater(t, e1[i], e2[i], "能量从受激励的梁流向另一根")
	}
	long, _ := s.Object("b1_SubsystemLong")
	el, _ := long.(*element.Subsystem).ModalEnergy()
	for _, v := range el {
		assert.InDelta(t, 0, v, 1e-30, "纵波没有输入")
	}
}

func TestRemoveIgnoresForeignObject(t *testing.T) {
	s1 := twoSubsystems(t)
	s2 := twoSubsystems(t)
	m, _ := s2.Object("m")
	assert.True(t, errors.Is(s1.Remove(m), types.ErrUnknownObject))
}

func TestSolveDisabledExcitation(t *testing.T) {
	s := twoSubsystems(t)
	e, _ := s.Object("e")
	e.Entity().Disable(false)

	a, _ := s.Object("a_SubsystemGeneric")
	power, err := a.(*element.Subsystem).PowerInput()
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, power)

	_, err = s.Solve(context.Background())
	require.NoError(t, err)
	energy, _ := a.(*element.Subsystem).ModalEnergy()
	assert.Positive(t, energy[0], "禁用激励不影响输入功率")
}

func TestNilFrequency(t *testing.T) {
	s := New(WithFrequency(nil), WithLogger(quiet()))
	assert.Zero(t, s.Frequency().Len())
	_, err := s.AddMaterial("m", "MaterialFluid", element.Properties{"density": 1.2})
	require.NoError(t, err)
}

func TestFailedCreateNoWarning(t *testing.T) {
	s := newSystem(t, nil, 1000)
	_, err := s.AddMaterial("m", "MaterialFluid", nil)
	require.NoError(t, err)

	// 构造失败时不记录重名警告
	_, err = s.AddMaterial("m", "MaterialFluid", element.Properties{"colour": "red"})
	require.ErrorIs(t, err, types.ErrInvalidProperty)
	assert.Empty(t, s.Warnings())
	assert.Equal(t, 1, s.Len())

	m, err := s.AddMaterial("m", "MaterialFluid", nil)
	require.NoError(t, err)
	assert.Equal(t, "m1", m.Name())
	require.Len(t, s.Warnings(), 1)
}
