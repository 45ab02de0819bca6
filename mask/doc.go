// Package mask holds the CPU side of mask rendering: staging buffers that
// receive the mask every frame, the grayscale to RGBA expansion used by the
// overlay mode, and simple mask sources.
package mask
