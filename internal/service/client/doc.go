// Package client implements timerctl: it connects to a running timer host,
// applies one action and prints the resulting snapshot, or follows the
// snapshot stream with "watch".
package client
