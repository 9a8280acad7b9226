package types

// 参考值常量定义
const (
	PressureRef = 2e-5  // 参考声压 Pa
	VelocityRef = 5e-8  // 参考振速 m/s
	PowerRef    = 1e-12 // 参考功率 W
	EnergyRef   = 1e-12 // 参考能量 J
	CLFRef      = 1e-12 // 参考耦合损耗因子
)

// 默认参数常量定义
var (
	ConditionLimit = 1e16 // 功率平衡矩阵条件数上限
	SuffixStart    = 1    // 重名后缀起始值
)
