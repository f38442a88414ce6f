// Package detection implements the Hough circle transform used by the
// detection server.
//
// # Algorithm
//
// For each candidate radius in the search range, every edge pixel votes for
// the centers of circles that could pass through it. Votes accumulate in a
// 2D array per radius; the best-supported cell across all radii is the
// winning circle candidate.
//
// The detector is deliberately single-result: it reports the one best
// circle, and only when the winner's support clears a circumference-
// proportional floor. Sparse or ambiguous ROIs therefore yield no circle
// rather than a low-quality guess.
//
// # Coordinate system
//
// Centers are reported in pixel coordinates relative to the edge mask,
// origin at the top-left, X rightward and Y downward.
//
// # Performance
//
// Voting is O(width × height × radii × 180), with votes cast every 2°
// around each edge pixel. Large radius ranges dominate the cost; callers
// should bound the range as tightly as they can.
package detection
