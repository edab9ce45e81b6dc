// Package ima describes the surface of the IMA DAI SDK that the ad wrapper
// consumes: stream requests, ad lifecycle events, errors, and the stream
// manager handle. Only value types and role interfaces live here; the SDK
// itself is an external collaborator.
package ima
