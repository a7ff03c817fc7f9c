// Package services implements the driving port interfaces.
// Services hold the workflow and pipeline registries, run pipelines to a
// terminal state and orchestrate calls to driven ports (adapters).
package services
