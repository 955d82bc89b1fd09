package cpu

import (
	"math"
	"testing"

	"github.com/weft-ml/weft/internal/tensor"
)

func rawFromFloat32(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatal(err)
	}
	copy(raw.AsFloat32(), data)
	return raw
}

func rawFromInt64(t *testing.T, data []int64, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Int64, tensor.CPU)
	if err != nil {
		t.Fatal(err)
	}
	copy(raw.AsInt64(), data)
	return raw
}

func TestBackendMetadata(t *testing.T) {
	c := New()
	if c.Name() != "cpu" {
		t.Errorf("Name() = %q, want %q", c.Name(), "cpu")
	}
	if c.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want %v", c.Device(), tensor.CPU)
	}
}

func TestResultsAllocatedOnBackendDevice(t *testing.T) {
	// Every operation must place its result on the backend's device, never
	// on an implicit default.
	c := New()
	a := rawFromFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := rawFromFloat32(t, []float32{5, 6, 7, 8}, tensor.Shape{2, 2})

	results := map[string]*tensor.RawTensor{
		"add":       c.Add(a, b),
		"sub":       c.Sub(a, b),
		"mul":       c.Mul(a, b),
		"div":       c.Div(a, b),
		"matmul":    c.MatMul(a, b),
		"addScalar": c.AddScalar(a, float32(1)),
		"mulScalar": c.MulScalar(a, float32(2)),
		"exp":       c.Exp(a),
		"sqrt":      c.Sqrt(a),
		"sum":       c.Sum(a),
		"sumDim":    c.SumDim(a, 0, false),
		"meanDim":   c.MeanDim(a, 1, true),
		"reshape":   c.Reshape(a, tensor.Shape{4}),
		"transpose": c.Transpose(a),
		"cast":      c.Cast(a, tensor.Int32),
	}

	for name, r := range results {
		if r.Device() != c.Device() {
			t.Errorf("%s: result on %v, want %v", name, r.Device(), c.Device())
		}
	}
}

func TestElementwiseOps(t *testing.T) {
	c := New()
	a := rawFromFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := rawFromFloat32(t, []float32{4, 3, 2, 1}, tensor.Shape{2, 2})

	tests := []struct {
		name string
		got  *tensor.RawTensor
		want []float32
	}{
		{"add", c.Add(a, b), []float32{5, 5, 5, 5}},
		{"sub", c.Sub(a, b), []float32{-3, -1, 1, 3}},
		{"mul", c.Mul(a, b), []float32{4, 6, 6, 4}},
		{"div", c.Div(a, b), []float32{0.25, 2.0 / 3.0, 1.5, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.got.AsFloat32()
			for i, want := range tt.want {
				if math.Abs(float64(got[i]-want)) > 1e-6 {
					t.Errorf("element %d = %v, want %v", i, got[i], want)
				}
			}
		})
	}
}

func TestBroadcasting(t *testing.T) {
	c := New()
	a := rawFromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := rawFromFloat32(t, []float32{10, 20, 30}, tensor.Shape{3})

	got := c.Add(a, b)
	if !got.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("shape = %v, want [2 3]", got.Shape())
	}
	want := []float32{11, 22, 33, 14, 25, 36}
	for i, w := range want {
		if got.AsFloat32()[i] != w {
			t.Errorf("element %d = %v, want %v", i, got.AsFloat32()[i], w)
		}
	}
}

func TestBroadcastColumn(t *testing.T) {
	c := New()
	a := rawFromFloat32(t, []float32{1, 2}, tensor.Shape{2, 1})
	b := rawFromFloat32(t, []float32{10, 20, 30, 40, 50, 60}, tensor.Shape{2, 3})

	got := c.Mul(a, b)
	want := []float32{10, 20, 30, 80, 100, 120}
	for i, w := range want {
		if got.AsFloat32()[i] != w {
			t.Errorf("element %d = %v, want %v", i, got.AsFloat32()[i], w)
		}
	}
}

func TestMatMul(t *testing.T) {
	c := New()
	a := rawFromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := rawFromFloat32(t, []float32{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

	got := c.MatMul(a, b)
	if !got.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("shape = %v, want [2 2]", got.Shape())
	}
	want := []float32{58, 64, 139, 154}
	for i, w := range want {
		if got.AsFloat32()[i] != w {
			t.Errorf("element %d = %v, want %v", i, got.AsFloat32()[i], w)
		}
	}
}

func TestMatMulIdentity(t *testing.T) {
	c := New()
	a := rawFromFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	eye := rawFromFloat32(t, []float32{1, 0, 0, 1}, tensor.Shape{2, 2})

	got := c.MatMul(a, eye)
	for i, w := range a.AsFloat32() {
		if got.AsFloat32()[i] != w {
			t.Errorf("element %d = %v, want %v", i, got.AsFloat32()[i], w)
		}
	}
}

func TestMatMulShapeMismatchPanics(t *testing.T) {
	c := New()
	a := rawFromFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := rawFromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})

	defer func() {
		if recover() == nil {
			t.Error("matmul with incompatible shapes did not panic")
		}
	}()
	c.MatMul(a, b)
}

func TestMathOps(t *testing.T) {
	c := New()
	x := rawFromFloat32(t, []float32{0, 1, 2}, tensor.Shape{3})

	exp := c.Exp(x).AsFloat32()
	for i, v := range []float64{1, math.E, math.E * math.E} {
		if math.Abs(float64(exp[i])-v) > 1e-5 {
			t.Errorf("exp[%d] = %v, want %v", i, exp[i], v)
		}
	}

	sq := rawFromFloat32(t, []float32{1, 4, 9}, tensor.Shape{3})
	sqrt := c.Sqrt(sq).AsFloat32()
	for i, v := range []float32{1, 2, 3} {
		if sqrt[i] != v {
			t.Errorf("sqrt[%d] = %v, want %v", i, sqrt[i], v)
		}
	}

	logIn := rawFromFloat32(t, []float32{1, float32(math.E)}, tensor.Shape{2})
	logOut := c.Log(logIn).AsFloat32()
	if math.Abs(float64(logOut[0])) > 1e-6 || math.Abs(float64(logOut[1])-1) > 1e-6 {
		t.Errorf("log = %v, want [0 1]", logOut)
	}
}

func TestReductions(t *testing.T) {
	c := New()
	x := rawFromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	if got := c.Sum(x).AsFloat32()[0]; got != 21 {
		t.Errorf("Sum = %v, want 21", got)
	}

	rows := c.SumDim(x, 1, false)
	if !rows.Shape().Equal(tensor.Shape{2}) {
		t.Fatalf("SumDim shape = %v, want [2]", rows.Shape())
	}
	if rows.AsFloat32()[0] != 6 || rows.AsFloat32()[1] != 15 {
		t.Errorf("SumDim(1) = %v, want [6 15]", rows.AsFloat32())
	}

	cols := c.SumDim(x, 0, true)
	if !cols.Shape().Equal(tensor.Shape{1, 3}) {
		t.Fatalf("SumDim keepDim shape = %v, want [1 3]", cols.Shape())
	}
	wantCols := []float32{5, 7, 9}
	for i, w := range wantCols {
		if cols.AsFloat32()[i] != w {
			t.Errorf("SumDim(0)[%d] = %v, want %v", i, cols.AsFloat32()[i], w)
		}
	}

	mean := c.MeanDim(x, 1, false)
	if mean.AsFloat32()[0] != 2 || mean.AsFloat32()[1] != 5 {
		t.Errorf("MeanDim(1) = %v, want [2 5]", mean.AsFloat32())
	}
}

func TestGather(t *testing.T) {
	c := New()
	x := rawFromFloat32(t, []float32{10, 20, 30, 40, 50, 60}, tensor.Shape{2, 3})
	idx := rawFromInt64(t, []int64{2, 0, 1, 1}, tensor.Shape{2, 2})

	got := c.Gather(x, 1, idx)
	if !got.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("shape = %v, want [2 2]", got.Shape())
	}
	want := []float32{30, 10, 50, 50}
	for i, w := range want {
		if got.AsFloat32()[i] != w {
			t.Errorf("element %d = %v, want %v", i, got.AsFloat32()[i], w)
		}
	}
}

func TestGatherIndexOutOfRangePanics(t *testing.T) {
	c := New()
	x := rawFromFloat32(t, []float32{1, 2, 3}, tensor.Shape{3})
	idx := rawFromInt64(t, []int64{3}, tensor.Shape{1})

	defer func() {
		if recover() == nil {
			t.Error("gather with out-of-range index did not panic")
		}
	}()
	c.Gather(x, 0, idx)
}

func TestWhere(t *testing.T) {
	c := New()
	cond, err := tensor.NewRaw(tensor.Shape{4}, tensor.Bool, tensor.CPU)
	if err != nil {
		t.Fatal(err)
	}
	copy(cond.AsBool(), []bool{true, false, true, false})

	x := rawFromFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{4})
	y := rawFromFloat32(t, []float32{-1, -2, -3, -4}, tensor.Shape{4})

	got := c.Where(cond, x, y).AsFloat32()
	want := []float32{1, -2, 3, -4}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("element %d = %v, want %v", i, got[i], w)
		}
	}
}

func TestTranspose(t *testing.T) {
	c := New()
	x := rawFromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	got := c.Transpose(x)
	if !got.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("shape = %v, want [3 2]", got.Shape())
	}
	want := []float32{1, 4, 2, 5, 3, 6}
	for i, w := range want {
		if got.AsFloat32()[i] != w {
			t.Errorf("element %d = %v, want %v", i, got.AsFloat32()[i], w)
		}
	}
}

func TestReshape(t *testing.T) {
	c := New()
	x := rawFromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	got := c.Reshape(x, tensor.Shape{3, 2})
	if !got.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("shape = %v, want [3 2]", got.Shape())
	}
	for i, w := range x.AsFloat32() {
		if got.AsFloat32()[i] != w {
			t.Errorf("element %d = %v, want %v", i, got.AsFloat32()[i], w)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("reshape to a different element count did not panic")
		}
	}()
	c.Reshape(x, tensor.Shape{4, 2})
}

func TestCast(t *testing.T) {
	c := New()
	x := rawFromFloat32(t, []float32{1.7, -2.2, 0}, tensor.Shape{3})

	asInt := c.Cast(x, tensor.Int32)
	wantInt := []int32{1, -2, 0}
	for i, w := range wantInt {
		if asInt.AsInt32()[i] != w {
			t.Errorf("int32 element %d = %v, want %v", i, asInt.AsInt32()[i], w)
		}
	}

	asBool := c.Cast(x, tensor.Bool)
	wantBool := []bool{true, true, false}
	for i, w := range wantBool {
		if asBool.AsBool()[i] != w {
			t.Errorf("bool element %d = %v, want %v", i, asBool.AsBool()[i], w)
		}
	}
}

func TestInt64Arithmetic(t *testing.T) {
	c := New()
	a := rawFromInt64(t, []int64{1, 2, 3}, tensor.Shape{3})
	b := rawFromInt64(t, []int64{10, 20, 30}, tensor.Shape{3})

	got := c.Add(a, b).AsInt64()
	want := []int64{11, 22, 33}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("element %d = %v, want %v", i, got[i], w)
		}
	}
}

func TestLargeTensorParallelPath(t *testing.T) {
	// Large enough to cross the parallel chunking threshold.
	c := New()
	n := 10_000
	data := make([]float32, n)
	for i := range data {
		data[i] = float32(i)
	}
	a := rawFromFloat32(t, data, tensor.Shape{n})
	b := rawFromFloat32(t, data, tensor.Shape{n})

	got := c.Add(a, b).AsFloat32()
	for i := 0; i < n; i += 997 {
		if got[i] != 2*float32(i) {
			t.Fatalf("element %d = %v, want %v", i, got[i], 2*float32(i))
		}
	}
}
