// Package server routes dev server requests between the static UI assets and
// the logger API, which is answered either by the fake backend or by the live
// controller through the forwarder.
package server
