package speedy

// Vertex is one corner of a draw primitive, in logical pixels.
//
// CircleCoord and CircleMix are used for circles: when CircleMix is
// positive, fragments whose interpolated CircleCoord lies outside the unit
// circle are discarded.
type Vertex struct {
	Position    Vec2
	Color       Color
	TexCoord    Vec2
	CircleCoord Vec2
	CircleMix   float32
}

// Batch is a run of triangles sharing one texture and one clip rectangle.
// It is sent to the Backend as a single indexed draw.
type Batch struct {
	// Texture is the sampled texture, or 0 for untextured geometry.
	Texture TextureID
	// Clip is the scissor rectangle in physical pixels, or nil.
	Clip *IRect
	// Vertices holds three entries per triangle.
	Vertices []Vertex
	// Indices indexes Vertices.
	Indices []uint32
}

// TriangleCount returns the number of triangles in the batch.
func (b *Batch) TriangleCount() int {
	return len(b.Indices) / 3
}

// BatchStats counts the work done by the batcher in the current frame.
type BatchStats struct {
	Batches   int
	Triangles int
}

// batcher accumulates triangles and sends one Batch per maximal run of
// identical (texture, clip) state.
type batcher struct {
	backend Backend

	open    bool
	texture TextureID
	clip    *IRect
	pending Batch

	stats BatchStats
	err   error
}

func newBatcher(b Backend) *batcher {
	return &batcher{backend: b}
}

// reset drops all transient state, including unflushed triangles.
func (q *batcher) reset() {
	q.open = false
	q.texture = 0
	q.clip = nil
	q.pending.Vertices = q.pending.Vertices[:0]
	q.pending.Indices = q.pending.Indices[:0]
	q.stats = BatchStats{}
	q.err = nil
}

// discard drops the open batch without sending it.
func (q *batcher) discard() {
	q.open = false
	q.pending.Vertices = q.pending.Vertices[:0]
	q.pending.Indices = q.pending.Indices[:0]
}

// submit appends one triangle. A change of texture or clip flushes the
// open batch first.
func (q *batcher) submit(tri [3]Vertex, texture TextureID, clip *IRect) {
	if q.open && (q.texture != texture || !sameClip(q.clip, clip)) {
		q.flush()
	}
	if !q.open {
		q.open = true
		q.texture = texture
		q.clip = copyClip(clip)
	}
	base := uint32(len(q.pending.Vertices))
	q.pending.Vertices = append(q.pending.Vertices, tri[0], tri[1], tri[2])
	q.pending.Indices = append(q.pending.Indices, base, base+1, base+2)
}

// flush sends the open batch. Empty batches are skipped.
func (q *batcher) flush() {
	if !q.open {
		return
	}
	q.open = false
	if len(q.pending.Indices) == 0 {
		return
	}
	q.pending.Texture = q.texture
	q.pending.Clip = q.clip
	if err := q.backend.Draw(&q.pending); err != nil && q.err == nil {
		q.err = err
	}
	q.stats.Batches++
	q.stats.Triangles += q.pending.TriangleCount()
	q.pending.Vertices = q.pending.Vertices[:0]
	q.pending.Indices = q.pending.Indices[:0]
	q.pending.Clip = nil
}

func sameClip(a, b *IRect) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func copyClip(c *IRect) *IRect {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
