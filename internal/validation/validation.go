// Package validation runs validator struct tags and custom checks and
// turns their failures into field errors a user can read.
package validation
