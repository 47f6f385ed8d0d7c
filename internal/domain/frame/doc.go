// Package frame holds the pure parts of a draggable frame: the drag state
// machine, the anchor rules, the shared drag registry, the touch/mouse input
// lock and the settle transition. Nothing here touches storage or rendering.
package frame
