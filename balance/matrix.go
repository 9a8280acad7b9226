package balance

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix 功率平衡方程 B·e = p
type Matrix struct {
	B *mat.Dense    // 功率平衡矩阵
	P *mat.VecDense // 输入功率 / ω
	E *mat.VecDense // 模态能量（解）
	N int           // 子系统数量
}

// NewMatrix 创建 n 个子系统的方程
func NewMatrix(n int) *Matrix {
	return &Matrix{
		B: mat.NewDense(n, n, nil),
		P: mat.NewVecDense(n, nil),
		E: mat.NewVecDense(n, nil),
		N: n,
	}
}

// StampMatrix 将值加到 B 的 (i,j) 元素上
func (m *Matrix) StampMatrix(i, j int, value float64) {
	m.B.Set(i, j, m.B.At(i, j)+value)
}

// StampRightSide 将值加到 p 的第 i 个元素上
func (m *Matrix) StampRightSide(i int, value float64) {
	m.P.SetVec(i, m.P.AtVec(i)+value)
}

// Zero 清零
func (m *Matrix) Zero() {
	m.B.Zero()
	m.P.Zero()
	m.E.Zero()
}

// Solve LU 分解求解，条件数超过 limit 或无穷大时视为奇异
func (m *Matrix) Solve(limit float64) (float64, error) {
	var lu mat.LU
	lu.Factorize(m.B)
	cond := lu.Cond()
	if math.IsInf(cond, 0) || math.IsNaN(cond) || cond > limit {
		return cond, fmt.Errorf("矩阵奇异或接近奇异，条件数 %g", cond)
	}
	if err := lu.SolveVecTo(m.E, false, m.P); err != nil {
		return cond, fmt.Errorf("矩阵求解失败: %w", err)
	}
	return cond, nil
}

// String 格式化输出
func (m *Matrix) String() string {
	return fmt.Sprintf("B =\n%v\np =\n%v\ne =\n%v",
		mat.Formatted(m.B, mat.Prefix("    "), mat.Squeeze()),
		mat.Formatted(m.P, mat.Prefix("    "), mat.Squeeze()),
		mat.Formatted(m.E, mat.Prefix("    "), mat.Squeeze()))
}
