package coupling_test

import (
	"io"
	"log/slog"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sea/element"
	"sea/element/coupling"
	_ "sea/element/excitation"
	"sea/system"
	"sea/types"
)

// plateInRoom 钢板与声腔通过面连接相接
func plateInRoom(t *testing.T) *system.System {
	t.Helper()
	f, err := types.Bands([]float64{125, 250, 500, 1000, 2000, 4000}, 1)
	require.NoError(t, err)
	s := system.New(system.WithFrequency(f), system.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	_, err = s.AddMaterial("steel", "MaterialSolid", element.Properties{
		"density": 7800, "young": 210e9, "poisson": 0.3, "loss_factor": 0.01,
	})
	require.NoError(t, err)
	_, err = s.AddMaterial("air", "MaterialGas", element.Properties{
		"density": 1.21, "bulk": 1.21 * 343 * 343, "loss_factor": 0.001,
	})
	require.NoError(t, err)
	_, err = s.AddComponent("panel", "Component2DPlate", element.Properties{
		"length": 2.0, "width": 1.5, "height": 0.003, "material": "steel",
	})
	require.NoError(t, err)
	_, err = s.AddComponent("room", "Component3DAcoustical", element.Properties{
		"length": 4.0, "width": 3.0, "height": 2.5, "material": "air",
	})
	require.NoError(t, err)
	_, err = s.AddJunction("wall", "Junction", element.Properties{"shape": "Surface", "components": []string{"panel", "room"}})
	require.NoError(t, err)
	return s
}

func TestSurfaceCouplingReciprocity(t *testing.T) {
	s := plateInRoom(t)
	created, err := s.UpdateCouplings("wall")
	require.NoError(t, err)
	require.Len(t, created, 2, "只有板弯曲波与声腔之间有面耦合规则")

	panel, _ := s.Object("panel_SubsystemBend")
	room, _ := s.Object("room_SubsystemLong")
	obj, err := s.Object("wall")
	require.NoError(t, err)
	wall := obj.(*element.Junction)
	forward := wall.Coupling(panel.Name(), room.Name())
	require.NotNil(t, forward)
	assert.Equal(t, "CouplingSurfacePlateAcoustical", forward.ModelName())
	backward := forward.Reciprocal()
	require.NotNil(t, backward)
	assert.Equal(t, "CouplingSurfaceAcousticalPlate", backward.ModelName())

	eta12, err := forward.CLF()
	require.NoError(t, err)
	eta21, err := backward.CLF()
	require.NoError(t, err)
	n1, err := panel.(*element.Subsystem).ModalDensity()
	require.NoError(t, err)
	n2, err := room.(*element.Subsystem).ModalDensity()
	require.NoError(t, err)
	for i := range eta12 {
		assert.Positive(t, eta12[i])
		assert.InEpsilon(t, eta12[i]*n1[i], eta21[i]*n2[i], 1e-9, "n1·η12 = n2·η21")
	}

	// 再次更新不重复创建
	again, err := s.UpdateCouplings(wall)
	require.NoError(t, err)
	assert.Empty(t, again)
	assert.Len(t, slices.Collect(s.Couplings()), 2)
}

func TestPlateBendingModalDensity(t *testing.T) {
	s := plateInRoom(t)
	panel, _ := s.Object("panel_SubsystemBend")
	n, err := panel.(*element.Subsystem).ModalDensity()
	require.NoError(t, err)
	// 弯曲波模态密度与频率无关 A/(4π·κ·c_L')
	cl := math.Sqrt(210e9 / (7800 * (1 - 0.09)))
	kappa := 0.003 / math.Sqrt(12)
	want := 3.0 / (4 * math.Pi * kappa * cl)
	for _, v := range n {
		assert.InEpsilon(t, want, v, 1e-9)
	}
}

func TestCavityModalDensity(t *testing.T) {
	s := plateInRoom(t)
	room, _ := s.Object("room_SubsystemLong")
	n, err := room.(*element.Subsystem).ModalDensity()
	require.NoError(t, err)
	f := s.Frequency().Center
	for i, v := range n {
		want := 4 * math.Pi * 30 * f[i] * f[i] / (2 * math.Pi * math.Pow(343, 3))
		assert.InEpsilon(t, want, v, 1e-9)
	}
}

func TestTransmission(t *testing.T) {
	z := []complex128{complex(2, 0), complex(1, 1)}
	tau := coupling.Transmission(z, z)
	assert.InDelta(t, 1, tau[0], 1e-15, "相同的实阻抗全透射")
	assert.InDelta(t, 0.5, tau[1], 1e-15)
	assert.Equal(t, []float64{0}, coupling.Transmission([]complex128{0}, []complex128{0}))
}

func TestSolvePlateRoom(t *testing.T) {
	s := plateInRoom(t)
	_, err := s.UpdateCouplings("wall")
	require.NoError(t, err)
	_, err = s.AddExcitation("hammer", "ExcitationPointForce", element.Properties{
		"subsystem": "panel_SubsystemBend", "force": 1.0,
	})
	require.NoError(t, err)
	require.NoError(t, s.Remove("panel_SubsystemLong"))
	require.NoError(t, s.Remove("panel_SubsystemShear"))

	res, err := s.Solve(t.Context())
	require.NoError(t, err)
	assert.Len(t, res.Names, 2)
	room, _ := s.Object("room_SubsystemLong")
	e, err := element.Quantity(room, "energy")
	require.NoError(t, err)
	for _, v := range e {
		assert.Positive(t, v)
	}
}
