// Package formats provides parsers for the model file formats the engine
// can ingest.
//
// Wavefront OBJ is implemented in obj.go. Parsers only produce CPU-side
// data; uploading geometry to the GPU is done by package mesh.
package formats
