package speedy

import (
	"errors"
	"slices"
	"testing"
)

func tri(x float32) [3]Vertex {
	return [3]Vertex{
		{Position: Vec2{X: x, Y: 0}},
		{Position: Vec2{X: x + 1, Y: 0}},
		{Position: Vec2{X: x, Y: 1}},
	}
}

func TestBatcherMergesRuns(t *testing.T) {
	clipA := &IRect{BottomRight: IVec2{X: 10, Y: 10}}
	clipA2 := &IRect{BottomRight: IVec2{X: 10, Y: 10}} // same value, different pointer
	clipB := &IRect{BottomRight: IVec2{X: 5, Y: 5}}

	type submission struct {
		texture TextureID
		clip    *IRect
	}
	type draw struct {
		texture TextureID
		tris    int
	}

	tests := []struct {
		name  string
		input []submission
		want  []draw
	}{
		{
			name:  "single run",
			input: []submission{{0, nil}, {0, nil}, {0, nil}},
			want:  []draw{{0, 3}},
		},
		{
			name:  "texture changes",
			input: []submission{{0, nil}, {0, nil}, {7, nil}, {7, nil}, {0, nil}},
			want:  []draw{{0, 2}, {7, 2}, {0, 1}},
		},
		{
			name:  "clip changes",
			input: []submission{{0, clipA}, {0, clipA2}, {0, clipB}, {0, nil}},
			want:  []draw{{0, 2}, {0, 1}, {0, 1}},
		},
		{
			name:  "alternating",
			input: []submission{{1, nil}, {2, nil}, {1, nil}, {2, nil}},
			want:  []draw{{1, 1}, {2, 1}, {1, 1}, {2, 1}},
		},
		{
			name:  "empty",
			input: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newRecordingBackend()
			q := newBatcher(b)
			for i, s := range tt.input {
				q.submit(tri(float32(i)), s.texture, s.clip)
			}
			q.flush()

			var got []draw
			for _, c := range b.draws() {
				got = append(got, draw{c.texture, c.tris})
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("draws = %v, want %v", got, tt.want)
			}
			if q.stats.Batches != len(tt.want) {
				t.Errorf("stats.Batches = %d, want %d", q.stats.Batches, len(tt.want))
			}
		})
	}
}

func TestBatcherPreservesOrder(t *testing.T) {
	b := newRecordingBackend()
	q := newBatcher(b)
	for i := range 5 {
		q.submit(tri(float32(i)), 0, nil)
	}
	q.flush()

	draws := b.draws()
	if len(draws) != 1 {
		t.Fatalf("len(draws) = %d, want 1", len(draws))
	}
	for i := range 5 {
		if got := draws[0].verts[i*3].Position.X; got != float32(i) {
			t.Errorf("triangle %d starts at x = %v, want %v", i, got, i)
		}
	}
}

func TestBatcherCopiesClip(t *testing.T) {
	b := newRecordingBackend()
	q := newBatcher(b)
	clip := &IRect{BottomRight: IVec2{X: 4, Y: 4}}
	q.submit(tri(0), 0, clip)
	clip.BottomRight.X = 100
	q.submit(tri(1), 0, clip)
	q.flush()

	if n := len(b.draws()); n != 2 {
		t.Errorf("len(draws) = %d, want 2 after mutating the clip", n)
	}
}

func TestBatcherDiscard(t *testing.T) {
	b := newRecordingBackend()
	q := newBatcher(b)
	q.submit(tri(0), 0, nil)
	q.discard()
	q.flush()
	if n := len(b.draws()); n != 0 {
		t.Errorf("len(draws) = %d, want 0", n)
	}
}

type failingDrawBackend struct {
	*recordingBackend
}

var errDraw = errors.New("draw failed")

func (failingDrawBackend) Draw(*Batch) error { return errDraw }

func TestBatcherKeepsFirstError(t *testing.T) {
	q := newBatcher(failingDrawBackend{newRecordingBackend()})
	q.submit(tri(0), 0, nil)
	q.submit(tri(1), 1, nil)
	q.flush()
	if !errors.Is(q.err, errDraw) {
		t.Errorf("err = %v, want %v", q.err, errDraw)
	}
}
