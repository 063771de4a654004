// Package hierarchy arranges landed titles into two independent forests:
// the de jure one (where a title belongs by law) and the de facto one
// (who actually holds it in fealty). The forests are built from the
// resolved registry and are guaranteed acyclic; a corrupt save that makes
// a title its own ancestor loses the edge that closes the loop.
package hierarchy
