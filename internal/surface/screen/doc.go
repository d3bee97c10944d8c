// Package screen implements render.Surface on an ebiten image using the
// vector package. The implementation needs the ebiten build tag.
package screen
