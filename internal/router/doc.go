// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package router decides how each outgoing chat turn is handled.
//
// A turn is classified in priority order: image-generation requests go
// to the image API, live-information queries are rewritten with the
// /search directive, and everything else becomes a plain chat completion
// with the Arc persona and a bounded history window.
package router
