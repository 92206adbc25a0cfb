// Package template defines the template engine seam the HTML renderer relies
// on. The gotemplate subpackage provides the pongo2-backed implementation.
// Hosts can inject their own engine to restyle controls without forking
// renderers.
package template
