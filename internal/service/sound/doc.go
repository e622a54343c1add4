// Package sound provides the alarm capabilities: a synthesized tone played
// through an external player and a spoken phrase through the system speech
// engine. Both start a process and return without waiting for it.
package sound
