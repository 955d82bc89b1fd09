package tensor

// To copies t onto the device served by dst and returns a tensor bound to
// dst. This is the only way a tensor's contents move between devices; the
// source tensor keeps its original device binding.
func To[T DType, B1 Backend, B2 Backend](t *Tensor[T, B1], dst B2) *Tensor[T, B2] {
	raw, err := NewRaw(t.Shape(), t.DType(), dst.Device())
	if err != nil {
		panic(err)
	}
	copy(raw.Data(), t.Raw().Data())
	return New[T, B2](raw, dst)
}
