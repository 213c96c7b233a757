package core

// DefaultIterations matches the embedded harness convention of five
// iterations per run.
const DefaultIterations = 5
