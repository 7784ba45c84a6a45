package transform

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/paulmach/orb"
	"golang.org/x/image/math/f64"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

// TestFromTagDataValidation tests that malformed tag combinations are rejected
// with an error naming the offending tag.
func TestFromTagDataValidation(t *testing.T) {
	identity := []float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	tie := []float64{0, 0, 0, 100, 200, 0}
	scale := []float64{2, 2, 0}

	tests := []struct {
		name        string
		pixelScale  []float64
		tiePoints   []float64
		matrix      []float64
		opts        Options
		tag         string
		unsupported bool
	}{
		{name: "short pixel scale", pixelScale: []float64{1, 1}, tiePoints: tie, tag: ModelPixelScaleTag},
		{name: "empty tie points", tiePoints: []float64{}, tag: ModelTiepointTag},
		{name: "partial tie point", tiePoints: tie[:5], pixelScale: scale, tag: ModelTiepointTag},
		{name: "trailing tie point value", tiePoints: append(append([]float64{}, tie...), 1), pixelScale: scale, tag: ModelTiepointTag},
		{name: "short matrix", matrix: identity[:15], tag: ModelTransformationTag},
		{name: "matrix with pixel scale", matrix: identity, pixelScale: scale, tag: ModelPixelScaleTag},
		{name: "matrix with tie points", matrix: identity, tiePoints: tie, tag: ModelTiepointTag},
		{name: "pixel scale alone", pixelScale: scale, tag: ModelTiepointTag},
		{name: "single tie point without scale", tiePoints: tie, tag: ModelPixelScaleTag},
		{name: "zero pixel scale", tiePoints: tie, pixelScale: []float64{0, 1, 0}, tag: ModelPixelScaleTag},
		{name: "singular matrix", matrix: make([]float64, 16), tag: ModelTransformationTag},
		{
			name:        "meshes disabled",
			tiePoints:   unitSquareTiePoints(),
			tag:         ModelTiepointTag,
			unsupported: true,
		},
		{
			name:      "two tie points",
			tiePoints: []float64{0, 0, 0, 0, 0, 0, 1, 1, 0, 1, 1, 0},
			opts:      DefaultOptions(),
			tag:       ModelTiepointTag,
		},
		{
			name:      "collinear tie points",
			tiePoints: []float64{0, 0, 0, 0, 0, 0, 1, 1, 0, 1, 1, 0, 2, 2, 0, 2, 2, 0},
			opts:      DefaultOptions(),
			tag:       ModelTiepointTag,
		},
		{
			name: "folded model mesh",
			tiePoints: []float64{
				0, 0, 0, 0, 0, 0,
				2, 0, 0, 2, 0, 0,
				1, 2, 0, 1, 2, 0,
				1, 0.5, 0, 1, -5, 0,
			},
			opts: DefaultOptions(),
			tag:  ModelTiepointTag,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, err := FromTagData(tt.pixelScale, tt.tiePoints, tt.matrix, tt.opts)
			if err == nil {
				t.Fatalf("Expected error, got transform %T", ct)
			}
			if ct != nil {
				t.Errorf("Expected nil transform alongside error, got %T", ct)
			}

			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("Expected *FormatError, got %T: %v", err, err)
			}
			if fe.Tag != tt.tag {
				t.Errorf("Expected tag %s, got %s (%v)", tt.tag, fe.Tag, err)
			}
			if got := errors.Is(err, ErrUnsupported); got != tt.unsupported {
				t.Errorf("errors.Is(err, ErrUnsupported) = %v, want %v", got, tt.unsupported)
			}
		})
	}
}

// TestFromTagDataNoTransform tests that missing georeferencing is not an error.
func TestFromTagDataNoTransform(t *testing.T) {
	ct, err := FromTagData(nil, nil, nil, DefaultOptions())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ct != nil {
		t.Errorf("Expected no transform, got %T", ct)
	}
}

// TestFromTagDataDispatch tests which strategy is built for each tag combination.
func TestFromTagDataDispatch(t *testing.T) {
	tests := []struct {
		name       string
		pixelScale []float64
		tiePoints  []float64
		matrix     []float64
		want       string
	}{
		{
			name:   "matrix",
			matrix: []float64{2, 0, 0, 100, 0, -2, 0, 200, 0, 0, 1, 0, 0, 0, 0, 1},
			want:   "*transform.Affine",
		},
		{
			name:       "tie point and scale",
			pixelScale: []float64{2, 2, 0},
			tiePoints:  []float64{0, 0, 0, 100, 200, 0},
			want:       "*transform.ScaleOffset",
		},
		{
			name:       "tie point mesh ignores scale",
			pixelScale: []float64{2, 2, 0},
			tiePoints:  unitSquareTiePoints(),
			want:       "*transform.Triangulated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, err := FromTagData(tt.pixelScale, tt.tiePoints, tt.matrix, DefaultOptions())
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			var got string
			switch ct.(type) {
			case *Affine:
				got = "*transform.Affine"
			case *ScaleOffset:
				got = "*transform.ScaleOffset"
			case *Triangulated:
				got = "*transform.Triangulated"
			}
			if got != tt.want {
				t.Errorf("Expected %s, got %T", tt.want, ct)
			}
		})
	}
}

// TestScaleOffset tests the single tie point mapping in both directions.
func TestScaleOffset(t *testing.T) {
	ct, err := FromTagData([]float64{2, 2, 0}, []float64{0, 0, 0, 100, 200, 0}, nil, DefaultOptions())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	model := ct.ToModel(orb.Point{10, 10})
	if diff := cmp.Diff(orb.Point{120, 180}, model, approx); diff != "" {
		t.Errorf("ToModel mismatch (-want +got):\n%s", diff)
	}

	raster := ct.ToRaster(orb.Point{120, 180})
	if diff := cmp.Diff(orb.Point{10, 10}, raster, approx); diff != "" {
		t.Errorf("ToRaster mismatch (-want +got):\n%s", diff)
	}

	// Control point
	if diff := cmp.Diff(orb.Point{100, 200}, ct.ToModel(orb.Point{0, 0})); diff != "" {
		t.Errorf("tie point not exact (-want +got):\n%s", diff)
	}
}

// TestScaleOffsetAnchor tests a tie point that is not the raster origin.
func TestScaleOffsetAnchor(t *testing.T) {
	s := NewScaleOffset([]float64{5, 7, 0, 1000, 2000, 0}, []float64{0.5, 0.25, 0})

	got := s.ToModel(orb.Point{9, 11})
	want := orb.Point{1000 + 4*0.5, 2000 - 4*0.25}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("ToModel mismatch (-want +got):\n%s", diff)
	}
}

// TestAffine tests the matrix mapping and its inverse.
func TestAffine(t *testing.T) {
	ct, err := FromTagData(nil, nil, []float64{
		2, 0, 0, 100,
		0, -2, 0, 200,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}, DefaultOptions())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	a := ct.(*Affine)
	if diff := cmp.Diff(f64.Aff3{2, 0, 100, 0, -2, 200}, a.Coefficients()); diff != "" {
		t.Errorf("Coefficients mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(f64.Aff3{0.5, 0, -50, 0, -0.5, 100}, a.InverseCoefficients(), approx); diff != "" {
		t.Errorf("InverseCoefficients mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(orb.Point{120, 180}, a.ToModel(orb.Point{10, 10}), approx); diff != "" {
		t.Errorf("ToModel mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(orb.Point{10, 10}, a.ToRaster(orb.Point{120, 180}), approx); diff != "" {
		t.Errorf("ToRaster mismatch (-want +got):\n%s", diff)
	}
}

// TestAffineInvertibility tests that forward and inverse coefficients compose
// to the identity.
func TestAffineInvertibility(t *testing.T) {
	theta := 0.3
	tests := []struct {
		name string
		m    f64.Mat4
	}{
		{"scale", f64.Mat4{3, 0, 0, 10, 0, 4, 0, -20, 0, 0, 1, 0, 0, 0, 0, 1}},
		{"rotation", f64.Mat4{
			math.Cos(theta), -math.Sin(theta), 0, 500000,
			math.Sin(theta), math.Cos(theta), 0, 4000000,
			0, 0, 1, 0,
			0, 0, 0, 1,
		}},
		{"shear", f64.Mat4{30, 5, 0, 1e6, -2, -30, 0, 5e6, 0, 0, 1, 0, 0, 0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAffine(tt.m)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			got := composeAffine(a.Coefficients(), a.InverseCoefficients())
			want := f64.Aff3{1, 0, 0, 0, 1, 0}
			if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
				t.Errorf("forward∘inverse mismatch (-want +got):\n%s", diff)
			}

			p := orb.Point{123.25, -77.5}
			if diff := cmp.Diff(p, a.ToRaster(a.ToModel(p)), cmpopts.EquateApprox(1e-12, 1e-6)); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestAffineIgnoresZ tests that the z row and column of the matrix do not
// affect the 2D mapping.
func TestAffineIgnoresZ(t *testing.T) {
	a, err := NewAffine(f64.Mat4{1, 0, 7, 5, 0, 1, 8, 6, 9, 9, 9, 9, 0, 0, 0, 1})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if diff := cmp.Diff(orb.Point{6, 7}, a.ToModel(orb.Point{1, 1})); diff != "" {
		t.Errorf("ToModel mismatch (-want +got):\n%s", diff)
	}
}

// composeAffine returns the coefficients of p -> f(g(p)).
func composeAffine(f, g f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		f[0]*g[0] + f[1]*g[3],
		f[0]*g[1] + f[1]*g[4],
		f[0]*g[2] + f[1]*g[5] + f[2],
		f[3]*g[0] + f[4]*g[3],
		f[3]*g[1] + f[4]*g[4],
		f[3]*g[2] + f[4]*g[5] + f[5],
	}
}

func TestFormatErrorMessage(t *testing.T) {
	err := &FormatError{Tag: ModelPixelScaleTag, Reason: "must contain 3 values, got 2"}
	want := "invalid ModelPixelScaleTag: must contain 3 values, got 2"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
}
