package element

import "slices"

// 派生物理量
var (
	subsystemQuantities = map[string]func(*Subsystem) ([]float64, error){
		"modal_density":             (*Subsystem).ModalDensity,
		"average_frequency_spacing": (*Subsystem).AverageFrequencySpacing,
		"dlf":                       (*Subsystem).DLF,
		"tlf":                       (*Subsystem).TLF,
		"power_input":               (*Subsystem).PowerInput,
		"energy":                    (*Subsystem).Energy,
		"energy_level":              (*Subsystem).EnergyLevel,
		"modal_overlap":             (*Subsystem).ModalOverlap,
		"phase_velocity":            (*Subsystem).PhaseVelocity,
		"group_velocity":            (*Subsystem).GroupVelocity,
		"wavenumber":                (*Subsystem).Wavenumber,
	}
	couplingQuantities = map[string]func(*Coupling) ([]float64, error){
		"clf":       (*Coupling).CLF,
		"clf_level": (*Coupling).CLFLevel,
		"power":     (*Coupling).Power,
		"power_net": (*Coupling).PowerNet,
	}
	excitationQuantities = map[string]func(*Excitation) ([]float64, error){
		"power":       (*Excitation).Power,
		"power_level": (*Excitation).PowerLevel,
	}
)

// Quantity 按名称读取序列或派生量
func Quantity(obj Object, name string) ([]float64, error) {
	switch o := obj.(type) {
	case *Subsystem:
		if f, ok := subsystemQuantities[name]; ok {
			return f(o)
		}
	case *Coupling:
		if f, ok := couplingQuantities[name]; ok {
			return f(o)
		}
	case *Excitation:
		if f, ok := excitationQuantities[name]; ok {
			return f(o)
		}
	}
	return obj.Entity().Series(name)
}

// Quantities 实体可查询的物理量名称
func Quantities(obj Object) []string {
	var names []string
	for _, f := range obj.Entity().Fields() {
		if f.Type == FieldSeries {
			names = append(names, f.Name)
		}
	}
	switch obj.(type) {
	case *Subsystem:
		names = appendKeys(names, subsystemQuantities)
	case *Coupling:
		names = appendKeys(names, couplingQuantities)
	case *Excitation:
		names = appendKeys(names, excitationQuantities)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

func appendKeys[F any](names []string, m map[string]F) []string {
	for k := range m {
		names = append(names, k)
	}
	return names
}
