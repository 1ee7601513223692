// SPDX-License-Identifier: Apache-2.0

// Package client implements the interactive dashboard client runtime.
//
// It wires the terminal UI, client services, and the background token
// refresh job into a single process lifecycle.
package client
