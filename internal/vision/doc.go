// Package vision wraps the OpenCV calls of the detection pipeline.
//
// Every function takes its inputs by value and returns a Mat the caller
// owns and must Close. Filter constants are fixed; only the per-frame
// tuning (zoom, exposure, bounding style) comes from a profile.
package vision
