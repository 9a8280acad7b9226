package material

import (
	"fmt"
	"math"

	"sea/element"
	"sea/types"
)

// 材料模型
var (
	SolidType = element.AddModel(element.Config{Type: types.KindMaterial, Model: "MaterialSolid", Extra: []string{"young", "shear", "poisson"}})
	GasType   = element.AddModel(element.Config{Type: types.KindMaterial, Model: "MaterialGas"})
	FluidType = element.AddModel(element.Config{Type: types.KindMaterial, Model: "MaterialFluid"})
)

// ModulusFrom 由已知的两个弹性常数求第三个，未知值传 0
func ModulusFrom(young, shear, poisson float64) (float64, float64, float64, error) {
	switch {
	case young != 0 && shear != 0 && poisson == 0:
		poisson = young/(2*shear) - 1
	case young != 0 && shear == 0 && poisson != 0:
		shear = young / (2 * (1 + poisson))
	case young == 0 && shear != 0 && poisson != 0:
		young = 2 * shear * (1 + poisson)
	case young != 0 && shear != 0 && poisson != 0:
	default:
		return 0, 0, 0, fmt.Errorf("需要 young、shear、poisson 中的至少两个")
	}
	return young, shear, poisson, nil
}

// Moduli 固体材料逐频带的弹性常数，缺失的一项由另两项推出
func Moduli(m *element.Material) (young, shear, poisson []float64, err error) {
	v, err := m.Values("young", "shear", "poisson")
	if err != nil {
		return nil, nil, nil, err
	}
	young, shear, poisson = v[0], v[1], v[2]
	for i := range young {
		if young[i], shear[i], poisson[i], err = ModulusFrom(young[i], shear[i], poisson[i]); err != nil {
			return nil, nil, nil, fmt.Errorf("材料 %s 频带 %d: %w", m.Name(), i, err)
		}
	}
	return young, shear, poisson, nil
}

// Solid 检查材料为固体
func Solid(m *element.Material) error {
	if m == nil {
		return fmt.Errorf("未设置材料")
	}
	if _, ok := m.Field("young"); !ok {
		return fmt.Errorf("%w: 材料 %s (%s) 不是固体", types.ErrNotSupported, m.Name(), m.ModelName())
	}
	return nil
}

// SoundSpeed 流体声速 sqrt(K/ρ)
func SoundSpeed(m *element.Material) ([]float64, error) {
	if m == nil {
		return nil, fmt.Errorf("未设置材料")
	}
	v, err := m.Values("bulk", "density")
	if err != nil {
		return nil, err
	}
	c := make([]float64, len(v[0]))
	for i := range c {
		c[i] = math.Sqrt(v[0][i] / v[1][i])
	}
	return c, nil
}
