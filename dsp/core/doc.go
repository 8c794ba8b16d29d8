// Package core holds small numeric helpers and the processor configuration
// shared by the command generators and analysers.
package core
