// Package logx configures stationq's structured logging.
//
// This repo uses a small wrapper (logx.Logger) on top of zerolog to keep:
//   - Console output readable (short timestamp + short caller)
//   - File output JSON-structured
//   - Optional email sink (min-level + rate limiting) so an unattended
//     station can report trouble to its operator
package logx
