package light

import "github.com/lumenray/tracer/pkg/core"

// Sampler picks a light to evaluate for a given shading point, per spec.md
// §4.5's SampleLight/SampleLightFromP contract.
type Sampler interface {
	SampleLight(u float64) (Light, float64, int)
	SampleLightFromP(point, normal core.Vec3, u float64) (Light, float64, int)
	LightProbability(index int, point, normal core.Vec3) float64
	Count() int
	At(index int) Light
}

// AliasLightSampler draws a light index in O(1) via a core.AliasTable over
// per-light power, replacing the teacher's core.WeightedLightSampler
// (O(n) cumulative-distribution scan per draw) per spec.md §4.5/§9.
type AliasLightSampler struct {
	lights []Light
	alias  *core.AliasTable
}

// NewAliasLightSampler builds the table from each light's scalar power
// (illuminance of its Emission, or a flat weight of 1 for lights this
// scene has no better proxy for).
func NewAliasLightSampler(lights []Light, power func(Light) float64) *AliasLightSampler {
	weights := make([]float64, len(lights))
	for i, l := range lights {
		weights[i] = power(l)
	}
	return &AliasLightSampler{lights: lights, alias: core.NewAliasTable(weights)}
}

func (s *AliasLightSampler) Count() int { return len(s.lights) }

func (s *AliasLightSampler) At(index int) Light { return s.lights[index] }

func (s *AliasLightSampler) SampleLight(u float64) (Light, float64, int) {
	if len(s.lights) == 0 {
		return nil, 0, -1
	}
	// The fractional part of u*n is uniform and independent of the bucket
	// u selects, so it serves as the alias table's second random.
	n := float64(len(s.lights))
	uc := u*n - float64(int(u*n))
	idx, _ := s.alias.Sample(u, uc)
	return s.lights[idx], s.alias.PMF(idx), idx
}

// SampleLightFromP is identical to SampleLight: the alias table is built
// once over global power and does not currently vary with shading point,
// matching the teacher's own WeightedLightSampler (which also sampled
// independent of the shading point despite taking one as a parameter).
func (s *AliasLightSampler) SampleLightFromP(point, normal core.Vec3, u float64) (Light, float64, int) {
	return s.SampleLight(u)
}

func (s *AliasLightSampler) LightProbability(index int, point, normal core.Vec3) float64 {
	if index < 0 || index >= len(s.lights) {
		return 0
	}
	return s.alias.PMF(index)
}
