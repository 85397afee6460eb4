package renderer

import "time"

// WorkerStat contains statistics about a single worker's share of a frame
type WorkerStat struct {
	// The worker id.
	ID int

	// Tasks and rows rendered, and the percentage of total frame area they represent.
	Tasks        int
	Rows         int
	FramePercent float32

	// Rays traced: camera, shadow, reflected and refracted.
	Rays uint64

	// Time spent tracing
	RenderTime time.Duration
}

// FrameStats contains statistics about the rendering process
type FrameStats struct {
	// Individual worker stats.
	Workers []WorkerStat

	// Total rays traced for the frame.
	Rays uint64

	// Total render time for entire frame.
	RenderTime time.Duration
}

// add merges a finished task into the worker's stats
func (s *WorkerStat) add(result taskResult, frameHeight int) {
	s.Tasks++
	s.Rows += result.rows
	s.Rays += result.rays
	s.RenderTime += result.elapsed
	s.FramePercent = 100 * float32(s.Rows) / float32(frameHeight)
}
