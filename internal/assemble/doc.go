// Package assemble emits the application-level files of the mini-program
// project: the app manifest, the runtime config module, the app script and
// stylesheet, the project and package descriptors, the optional sitemap, the
// npm marker and, when a redirect asks for it, the web-view fallback page.
//
// Descriptor templates are embedded and decoded fresh for every build, then
// deep-merged with the user's overrides.
package assemble
