// Package gpu builds wgpu render pipelines for the embedded WGSL programs.
//
// A ProgramPipeline is created from a shaders.Program: the WGSL source is
// compiled through the HAL, one bind group layout is created per group in
// the program's binding contract, and the vertex buffer layout and color
// targets are derived from the contract's attributes and outputs. Nothing
// is hand-written per program, so a contract that validates against its
// source produces a pipeline that matches it.
//
// Devices come from OpenDevice. The "noop" backend runs everywhere and is
// what the tests use; "vulkan" selects a discrete or integrated GPU when
// one is present.
package gpu
