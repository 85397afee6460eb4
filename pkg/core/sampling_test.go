package core

import (
	"math"
	"testing"
)

func TestRandomSampler_ReseedIsReproducible(t *testing.T) {
	sampler := NewSeededSampler(1)
	first := []float64{sampler.Get1D(), sampler.Get1D(), sampler.Get1D()}

	sampler.Get3D() // advance the stream
	sampler.Reseed(1)
	second := []float64{sampler.Get1D(), sampler.Get1D(), sampler.Get1D()}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Sample %d differs after reseed: %f vs %f", i, first[i], second[i])
		}
	}
}

func TestRandomSampler_Range(t *testing.T) {
	sampler := NewSeededSampler(42)
	for i := 0; i < 1000; i++ {
		v := sampler.Get3D()
		for axis := 0; axis < 3; axis++ {
			c := v.Component(axis)
			if c < 0 || c >= 1 {
				t.Fatalf("Sample component out of [0,1): %f", c)
			}
		}
	}
}

func TestSamplePointInUnitSphere(t *testing.T) {
	samples := []float64{0, 0.1, 0.5, 0.9, 0.999999}
	for _, a := range samples {
		for _, b := range samples {
			for _, c := range samples {
				p := SamplePointInUnitSphere(NewVec3(a, b, c))
				if p.Length() > 1+1e-12 {
					t.Fatalf("Point %v outside unit sphere", p)
				}
			}
		}
	}
}

func TestRandomVec3_Distribution(t *testing.T) {
	sampler := NewSeededSampler(3)
	const n = 20000

	var sum Vec3
	for i := 0; i < n; i++ {
		v := RandomVec3(sampler)
		if v.Length() > 1+1e-12 {
			t.Fatalf("Vector %v outside unit ball", v)
		}
		sum = sum.Add(v)
	}

	mean := sum.Multiply(1.0 / n)
	if math.Abs(mean.X) > 0.02 || math.Abs(mean.Y) > 0.02 || math.Abs(mean.Z) > 0.02 {
		t.Errorf("Expected mean near origin, got %v", mean)
	}
}

func TestSampleInCube(t *testing.T) {
	if got := SampleInCube(NewVec3(0, 0.5, 1)); got != NewVec3(-0.5, 0, 0.5) {
		t.Errorf("Unexpected cube sample %v", got)
	}
}
