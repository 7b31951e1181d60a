// Package imaging implements the diamond reflection effect.
//
// The effect keeps a diamond-shaped region in the middle of the frame and
// fills everything around it with the image point-reflected through its
// center. The two are blended through a Gaussian-softened mask, lifted in
// brightness and finished with a faint horizontal color fringe.
//
// # Pipeline
//
//  1. NewRaster normalizes a decoded image.Image to float samples in [0,1].
//  2. DiamondMask builds a binary L1-distance mask, optionally turned by
//     RotateMask (bilinear, zero fill outside the frame).
//  3. GaussianBlur softens the mask edges (sigma = edge softness in pixels).
//  4. Reflect flips the raster along both axes.
//  5. Blend mixes original and reflection: o*m + r*(1-m).
//  6. Tone applies v*0.8 + 0.2 and clamps to [0,1].
//  7. Fringe mixes in a copy shifted 3 columns to the right (wrapping).
//  8. Raster.Image converts back to 8 bits by truncation.
//
// DiamondReflection runs all of the above for an image.Image.
//
// # Coordinate System
//
// Pixel (0,0) is the top-left corner, X grows rightward and Y downward.
// Masks are indexed mask[y][x]. The diamond center sits at (w/2, h/2).
//
// # Thread Safety
//
// Every function is pure: inputs are never modified (except by Tone, which
// works in place on a raster the caller owns) and nothing is shared between
// calls. Rows are processed in parallel inside one call; results do not
// depend on scheduling.
package imaging
