// Package security implements a static heuristic scanner for shell scripts.
//
// A Scanner runs a fixed, ordered battery of Detectors over the source lines
// of one script and collects their Findings:
//
//   - Line-local detectors (unsanitized read, dangerous commands, unquoted
//     expansion, path traversal, temp file races, PATH poisoning, secret
//     logging, world-writable chmod)
//   - Stateful detectors that carry latches or windows across lines (TOCTOU,
//     eval injection, PID file races, infinite logging loops, delayed
//     self-destruct, background lock monitors, cache abuse, silent failures,
//     PID check masking)
//
// Scanning is pure: the same lines always produce the same findings in the
// same order. The package is a heuristic lint, not a shell parser.
//
// The Guard reuses the scanner to vet single commands before execution.
package security
