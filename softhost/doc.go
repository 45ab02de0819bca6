// Package softhost is a CPU implementation of gpucore.Host.
//
// It keeps textures in memory, compiles programs with naga to validate
// them, and executes each program through a CPU [Kernel] registered under
// the program's label. Frames of parent sources are supplied with
// [Host.SetFrame]; [Host.Render] runs a filter into a render target.
//
// softhost is meant for tools and tests. The graphics bracket is a
// reentrant lock: one goroutine holds it at a time. GPU calls made by a
// goroutine that does not hold it are counted as violations in [Stats].
//
// Example:
//
//	host := softhost.New()
//	self, parent := host.NewSourceID(), host.NewSourceID()
//	host.Attach(self, parent)
//	host.SetFrame(parent, frame)
//
//	c, err := filter.Create(host, masks, nil, self)
//	...
//	target := host.NewTarget(frame.Bounds().Dx(), frame.Bounds().Dy())
//	res := host.Render(self, target, c)
package softhost
