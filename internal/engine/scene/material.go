package scene

// Material is a recolorable surface slot. Color writes go through SetColor
// so the renderer can pick up pending changes via the dirty flag.
type Material struct {
	Name string

	color Color
	dirty bool
}

// NewMaterial creates a material with the given base color.
func NewMaterial(name string, color Color) *Material {
	return &Material{Name: name, color: color}
}

// Color returns the current color.
func (m *Material) Color() Color {
	return m.color
}

// SetColor stores color and marks the material as needing a render-state
// refresh.
func (m *Material) SetColor(c Color) {
	m.color = c
	m.dirty = true
}

// Dirty reports whether the material changed since the last ClearDirty.
func (m *Material) Dirty() bool {
	return m.dirty
}

// ClearDirty resets the refresh flag. The renderer calls this after
// uploading the color.
func (m *Material) ClearDirty() {
	m.dirty = false
}
