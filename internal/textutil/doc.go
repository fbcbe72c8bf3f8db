// Package textutil provides string scoring and path-segment sanitization
// shared by the matching and organization layers.
package textutil
