// Package server exposes the diamond reflection effect over HTTP.
//
// # Routes
//
//   - GET /: plain-text banner, useful as a liveness probe
//   - POST /diamond_reflection_effect: apply the effect to an upload
//
// # Effect Request
//
// The request body is multipart/form-data:
//   - image (file, required): PNG, JPEG, GIF, BMP, TIFF or WebP
//   - diamond_size (number, default 0.5)
//   - edge_softness (number, default 20)
//   - rotation (number of degrees, default 0)
//
// The response is always a PNG with the input's dimensions. X-Image-Width
// and X-Image-Height repeat them.
//
// # Error Handling
//
// Client faults answer 400 with a JSON body {"error": "..."}:
//   - no image part: "No image file provided"
//   - non-numeric or non-finite parameter: "invalid <field>: ..."
//   - undecodable image: "failed to decode image: ..."
//
// Bodies over the configured upload limit answer 413. Anything else answers
// 500 and is reported to Sentry when a DSN is configured. Degenerate but
// numeric parameters (negative sizes, zero softness) are accepted.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(cfg)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
