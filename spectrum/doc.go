// Package spectrum synthesizes peak-mixture spectra from flat parameter
// vectors.
//
// A parameter vector holds one [center, fwhm, intensity] block per peak, in
// the order of the peak list. [Synthesize] is the one-shot form used by an ABC
// simulation step; [Synthesizer] keeps the grid and peak list for repeated
// evaluation, and [Model] pairs it with an observed spectrum.
//
// A peak list entry that is not a known shape resets the accumulated spectrum
// to zero at that position in the list. Peaks after it are still added.
package spectrum
