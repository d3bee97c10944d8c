// Package ui draws the windowed viewer's control panel and canvas
// overlays. Everything but this file needs the ebiten build tag.
package ui
