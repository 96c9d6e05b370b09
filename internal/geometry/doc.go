// Package geometry holds the OpenCV-free arithmetic behind shape annotation:
// real-world size estimates, shape classification by vertex count, label
// placement and reference grid layout.
package geometry
