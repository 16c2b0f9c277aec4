// Enums live in their own package so both the configuration layer and the
// postprocessing pipeline can share them without an import cycle.
package common

// Delivery channel the pipeline prepares HTML for.
// ENUM(email, frontsteps, web)
type Profile int

// BodyOnly reports whether the profile output must be a body-only fragment
// with all document wrappers removed.
func (p Profile) BodyOnly() bool {
	return p == ProfileEmail || p == ProfileFrontsteps
}

// StripsAnchors reports whether the target host removes functional in-page
// anchors, requiring them to be converted to inert spans.
func (p Profile) StripsAnchors() bool {
	return p == ProfileFrontsteps
}

// Specification of image resizing mode.
// ENUM(none, keepAR, stretch)
type ImageResizeMode int
