package coupling

import (
	"fmt"
	"math"
	"math/cmplx"

	"sea/element"
	"sea/element/beam"
	"sea/element/cavity"
	"sea/element/plate"
	"sea/types"
)

// 耦合模型
var (
	PointStructuralType        = element.AddModel(&PointStructural{element.Config{Type: types.KindCoupling, Model: "CouplingPointStructural"}})
	LineStructuralType         = element.AddModel(&LineStructural{element.Config{Type: types.KindCoupling, Model: "CouplingLineStructural", Extra: []string{"length"}}})
	SurfacePlateAcousticalType = element.AddModel(&SurfacePlateAcoustical{element.Config{Type: types.KindCoupling, Model: "CouplingSurfacePlateAcoustical"}})
	SurfaceAcousticalPlateType = element.AddModel(&SurfaceAcousticalPlate{element.Config{Type: types.KindCoupling, Model: "CouplingSurfaceAcousticalPlate"}})
)

func init() {
	beamKey := func(s element.SubsystemModel) string { return beam.ComponentType.Name() + "." + s.Name() }
	plateKey := func(s element.SubsystemModel) string { return plate.ComponentType.Name() + "." + s.Name() }
	cavityKey := cavity.ComponentType.Name() + "." + cavity.LongType.Name()
	for _, s := range []element.SubsystemModel{beam.LongType, beam.BendType, beam.ShearType} {
		element.AddCouplingRule(types.ShapePoint, beamKey(s), beamKey(s), PointStructuralType.Name())
	}
	element.AddCouplingRule(types.ShapePoint, plateKey(plate.BendType), plateKey(plate.BendType), PointStructuralType.Name())
	element.AddCouplingRule(types.ShapePoint, beamKey(beam.BendType), plateKey(plate.BendType), PointStructuralType.Name())
	element.AddCouplingRule(types.ShapePoint, plateKey(plate.BendType), beamKey(beam.BendType), PointStructuralType.Name())
	element.AddCouplingRule(types.ShapeLine, plateKey(plate.BendType), plateKey(plate.BendType), LineStructuralType.Name())
	element.AddCouplingRule(types.ShapeSurface, plateKey(plate.BendType), cavityKey, SurfacePlateAcousticalType.Name())
	element.AddCouplingRule(types.ShapeSurface, cavityKey, plateKey(plate.BendType), SurfaceAcousticalPlateType.Name())
}

// endpoints 读取耦合两端
func endpoints(c *element.Coupling) (from, to *element.Subsystem, err error) {
	from, to = c.SubsystemFrom(), c.SubsystemTo()
	if from == nil || to == nil {
		return nil, nil, fmt.Errorf("耦合 %s 两端未设置", c.Name())
	}
	return from, to, nil
}

// Transmission 两个点阻抗之间的透射系数 4R1R2/|Z1+Z2|²
func Transmission(z1, z2 []complex128) []float64 {
	tau := make([]float64, len(z1))
	for i := range tau {
		sum := cmplx.Abs(z1[i] + z2[i])
		if sum == 0 {
			continue
		}
		tau[i] = 4 * real(z1[i]) * real(z2[i]) / (sum * sum)
	}
	return tau
}

// transmission 耦合两端子系统之间的透射系数
func transmission(from, to *element.Subsystem) ([]float64, error) {
	z1, err := from.ImpedancePointForce()
	if err != nil {
		return nil, err
	}
	z2, err := to.ImpedancePointForce()
	if err != nil {
		return nil, err
	}
	return Transmission(z1, z2), nil
}

// PointStructural 结构点连接，ω·η12·n1 = τ/(2π)
type PointStructural struct{ element.Config }

// CLF 耦合损耗因子
func (PointStructural) CLF(c *element.Coupling) ([]float64, error) {
	from, to, err := endpoints(c)
	if err != nil {
		return nil, err
	}
	tau, err := transmission(from, to)
	if err != nil {
		return nil, err
	}
	n, err := from.ModalDensity()
	if err != nil {
		return nil, err
	}
	w := c.Frequency().Angular()
	clf := make([]float64, len(tau))
	for i := range clf {
		clf[i] = tau[i] / (2 * math.Pi * w[i] * n[i])
	}
	return clf, nil
}

// LineStructural 结构线连接，η12 = c_g·L·τ/(π·ω·A1)
type LineStructural struct{ element.Config }

// CLF 耦合损耗因子
func (LineStructural) CLF(c *element.Coupling) ([]float64, error) {
	from, to, err := endpoints(c)
	if err != nil {
		return nil, err
	}
	tau, err := transmission(from, to)
	if err != nil {
		return nil, err
	}
	cg, err := from.GroupVelocity()
	if err != nil {
		return nil, err
	}
	length, err := c.Series("length")
	if err != nil {
		return nil, err
	}
	p, err := plate.Load(from)
	if err != nil {
		return nil, err
	}
	w := c.Frequency().Angular()
	clf := make([]float64, len(tau))
	for i := range clf {
		clf[i] = cg[i] * length[i] * tau[i] / (math.Pi * w[i] * p.Area[i])
	}
	return clf, nil
}

// radiation 板向声腔的耦合损耗因子 ρ0·c0·σ/(ω·m'')
func radiation(plateSub, cavitySub *element.Subsystem) ([]float64, error) {
	p, err := plate.Load(plateSub)
	if err != nil {
		return nil, err
	}
	air, err := cavity.Load(cavitySub)
	if err != nil {
		return nil, err
	}
	g, err := plateSub.Component().Values("length", "width")
	if err != nil {
		return nil, err
	}
	sigma := RadiationEfficiency(p, air.Speed, g[0], g[1])
	m := p.MassPerArea()
	clf := make([]float64, len(sigma))
	for i := range clf {
		clf[i] = air.Density[i] * air.Speed[i] * sigma[i] / (p.Omega[i] * m[i])
	}
	return clf, nil
}

// RadiationEfficiency 矩形板弯曲波辐射效率的简化估计
// 吻合频率以下按边缘辐射，以上为 1/sqrt(1-fc/f)，两段都不超过吻合频率处的值
func RadiationEfficiency(p *plate.Props, c0, length, width []float64) []float64 {
	fc := p.CriticalFrequency(c0)
	sigma := make([]float64, len(fc))
	for i := range sigma {
		f := p.Omega[i] / (2 * math.Pi)
		lambda := c0[i] / fc[i]
		peak := math.Sqrt(length[i]/lambda) + math.Sqrt(width[i]/lambda)
		perimeter := 2 * (length[i] + width[i])
		area := length[i] * width[i]
		if f < fc[i] {
			sigma[i] = perimeter * c0[i] / (math.Pi * math.Pi * area * fc[i]) * math.Sqrt(f/fc[i])
		} else if f > fc[i] {
			sigma[i] = 1 / math.Sqrt(1-fc[i]/f)
		} else {
			sigma[i] = peak
		}
		sigma[i] = math.Min(sigma[i], peak)
	}
	return sigma
}

// SurfacePlateAcoustical 板向声腔辐射
type SurfacePlateAcoustical struct{ element.Config }

// CLF 耦合损耗因子
func (SurfacePlateAcoustical) CLF(c *element.Coupling) ([]float64, error) {
	from, to, err := endpoints(c)
	if err != nil {
		return nil, err
	}
	return radiation(from, to)
}

// SurfaceAcousticalPlate 声腔激励板，由互易关系求得
type SurfaceAcousticalPlate struct{ element.Config }

// CLF 耦合损耗因子
func (SurfaceAcousticalPlate) CLF(c *element.Coupling) ([]float64, error) {
	from, to, err := endpoints(c)
	if err != nil {
		return nil, err
	}
	clf, err := radiation(to, from)
	if err != nil {
		return nil, err
	}
	nPlate, err := to.ModalDensity()
	if err != nil {
		return nil, err
	}
	nCavity, err := from.ModalDensity()
	if err != nil {
		return nil, err
	}
	return element.Consistency(clf, nPlate, nCavity), nil
}
