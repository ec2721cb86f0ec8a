// Package gm (stands for geometry math) provides the small geometry
// primitives used for spawn placement: a 2d vector type Vec and an angle
// type Rad measured in radians.
package gm
