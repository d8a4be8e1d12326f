// Package core holds small buffer and floating-point helpers shared by the
// resampling, peak and spectrum packages.
package core
