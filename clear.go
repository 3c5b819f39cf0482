package shading

// DefaultClearColor is the color render targets are cleared to before a
// frame: near-black, opaque.
var DefaultClearColor = Vec4{X: 0.01, Y: 0.01, Z: 0.01, W: 1}
