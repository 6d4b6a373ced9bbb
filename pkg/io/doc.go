// Package io reads layout requests from TOML or JSON files and writes computed
// positions as JSON.
//
// # Request Format
//
// A request holds the arrangement array and, optionally, figure parameters
// and an inset. In TOML:
//
//	array = [
//	  [1, 1, 2, 2],
//	  [0, 3, 3, 0],
//	]
//
//	[params]
//	fig_width = 10.0
//	fig_height = 6.0
//	wspace = [0.3]
//	wratios = [1.0, 1.0, 2.0, 1.0]
//
//	[inset]
//	loc = "upper right"
//	length = 0.4
//	width = 0.05
//
// The same keys are used in JSON. Parameters that are left out keep the
// values of [layout.DefaultParams].
//
// # Import
//
// Use [ImportRequest] to read a file, choosing the format by extension, or
// [ReadRequest] to read from any io.Reader in a given [Format]:
//
//	req, err := io.ImportRequest("layout.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pos, err := layout.Compute(req.Array, req.Params)
//
// Decoding failures carry the INVALID_FORMAT code; structurally valid
// requests with bad values fail validation with INVALID_CONFIG.
//
// # Export
//
// [WritePositions] encodes positions as a JSON list ordered by subplot id;
// [ExportPositions] writes the same to a file. [WriteLines] encodes the grid
// lines of a layout.
package io
