package ptr

// Ptr возвращает указатель на переданное значение
func Ptr[T any](v T) *T {
	return &v
}

// Value возвращает значение по указателю или def, если указатель nil
func Value[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
