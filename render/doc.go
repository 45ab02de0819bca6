// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides frame targets and device integration for hosts
// that run the mask compositor.
//
// # Key Principle
//
// vbg RECEIVES a GPU device from the host application, it does NOT create
// its own. [DeviceHandle] is how a host hands over its device; a
// [NullDeviceHandle] stands in for CPU-only hosts.
//
// # RenderTarget Implementations
//
//   - PixmapTarget: CPU-backed *image.RGBA frame
package render
