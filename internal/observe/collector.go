// Package observe collects per-step model statistics. It reads model state
// through reporter functions after each step and optionally writes every
// frame to a SQLite sink; the simulation core never depends on it.
package observe

// Frame is one step's worth of reporter values.
type Frame struct {
	Step   int
	Values map[string]float64
}

// Collector tracks named reporters and records one frame per Collect call.
// Reporters run in registration order.
type Collector struct {
	names     []string
	reporters map[string]func() float64
	frames    []Frame
	sink      *Sink
}

// NewCollector creates an empty collector. sink may be nil for in-memory
// collection only.
func NewCollector(sink *Sink) *Collector {
	return &Collector{
		reporters: make(map[string]func() float64),
		sink:      sink,
	}
}

// Track registers a reporter under a name. Re-registering a name replaces
// the reporter but keeps its original position.
func (c *Collector) Track(name string, fn func() float64) {
	if _, ok := c.reporters[name]; !ok {
		c.names = append(c.names, name)
	}
	c.reporters[name] = fn
}

// Collect runs every reporter and records the frame, flushing it to the
// sink when one is attached.
func (c *Collector) Collect(step int) error {
	values := make(map[string]float64, len(c.names))
	for _, name := range c.names {
		values[name] = c.reporters[name]()
	}
	c.frames = append(c.frames, Frame{Step: step, Values: values})
	if c.sink != nil {
		return c.sink.Write(step, c.names, values)
	}
	return nil
}

// Frames returns every recorded frame in step order.
func (c *Collector) Frames() []Frame {
	out := make([]Frame, len(c.frames))
	copy(out, c.frames)
	return out
}

// Last returns the most recent frame, or false if nothing was collected yet.
func (c *Collector) Last() (Frame, bool) {
	if len(c.frames) == 0 {
		return Frame{}, false
	}
	return c.frames[len(c.frames)-1], true
}

// Series returns the values of one reporter across all frames, in step order.
func (c *Collector) Series(name string) []float64 {
	out := make([]float64, len(c.frames))
	for i, f := range c.frames {
		out[i] = f.Values[name]
	}
	return out
}
