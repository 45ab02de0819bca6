// Package gpucore defines the host capabilities the mask compositor consumes.
//
// The compositor never talks to a GPU API directly. Everything it needs from
// the media pipeline it is embedded in is expressed by two interfaces:
//
//   - [MaskSource] produces the per-frame single-channel mask.
//   - [Host] creates and destroys textures and shader programs, uploads
//     pixel data, and runs the filter render pass.
//
// # Architecture
//
//	             +------------------+
//	             |  filter          |
//	             |  (Compositor)    |
//	             +--------+---------+
//	                      |
//	       +--------------+--------------+
//	       |                             |
//	+------v-------+             +-------v------+
//	|   softhost   |             |   halhost    |
//	| (CPU frames) |             | (hal.Device) |
//	+--------------+             +--------------+
//
// # Resource Management
//
// GPU resources are referenced through opaque IDs ([TextureID], [ProgramID],
// [ParamID]). The zero value of every ID type is [InvalidID] and means "no
// resource"; destroying an invalid ID is always a no-op. Hosts keep the
// mapping between IDs and their own backend objects.
//
// # Graphics Context
//
// All texture and program calls must happen between [Host.EnterGraphics] and
// [Host.LeaveGraphics]. The bracket is nestable: a host only releases its
// graphics lock when the outermost bracket is left. Use [Graphics] to get a
// release function suitable for defer.
package gpucore
