// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// Key principle: vbg RECEIVES the device from the host, it does NOT create
// one. Filters render into whatever device and surface format the media
// pipeline already uses.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used for CPU-only rendering where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}

// OutputFormat returns the format frames should be produced in for handle.
// Hosts without a surface, including a nil handle, get RGBA8Unorm.
func OutputFormat(handle DeviceHandle) gputypes.TextureFormat {
	if handle == nil {
		return gputypes.TextureFormatRGBA8Unorm
	}
	switch f := handle.SurfaceFormat(); f {
	case gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatRGBA8Unorm:
		return f
	default:
		return gputypes.TextureFormatRGBA8Unorm
	}
}
