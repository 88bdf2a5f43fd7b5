package scene

// Light is a coloured point light. Its position comes from the entity's
// Transform.
type Light struct {
	Colour Colour
}

// BakedLight is a per-frame value snapshot of a light and its transform.
type BakedLight struct {
	Transform Transform
	Light     Light
}
