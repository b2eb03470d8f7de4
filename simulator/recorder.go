package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	vidio "github.com/AlexEidt/Vidio"
)

// recorder is a render.Presenter that writes frames to disk instead of a
// display: every Nth frame as a PNG file and, optionally, all of them to an
// MP4 through ffmpeg.
type recorder struct {
	width, height int
	pngDir        string
	every         int
	mp4Path       string
	fps           float64
	// limit caps the number of recorded frames; 0 records everything.
	limit int

	video  *vidio.VideoWriter
	frames int
	pngs   int
	// err is the first write failure.
	err error
}

func (r *recorder) Start(ctx context.Context) error {
	if r.every <= 0 {
		r.every = 1
	}
	if r.pngDir != "" {
		if err := os.MkdirAll(r.pngDir, 0o755); err != nil {
			return fmt.Errorf("create png dir: %w", err)
		}
	}
	if r.mp4Path != "" {
		video, err := vidio.NewVideoWriter(r.mp4Path, r.width, r.height, &vidio.Options{FPS: r.fps})
		if err != nil {
			return fmt.Errorf("open video writer %s: %w", r.mp4Path, err)
		}
		r.video = video
	}
	return nil
}

func (r *recorder) Stop() error {
	if r.video != nil {
		r.video.Close()
		r.video = nil
	}
	return nil
}

func (r *recorder) Size() (int, int) { return r.width, r.height }

func (r *recorder) Present(frame *image.RGBA) error {
	if err := r.present(frame); err != nil {
		if r.err == nil {
			r.err = err
		}
		return err
	}
	return nil
}

func (r *recorder) present(frame *image.RGBA) error {
	if r.limit > 0 && r.frames >= r.limit {
		return nil
	}
	index := r.frames
	r.frames++

	if r.pngDir != "" && index%r.every == 0 {
		if err := writePNG(filepath.Join(r.pngDir, fmt.Sprintf("frame-%05d.png", index)), frame); err != nil {
			return err
		}
		r.pngs++
	}
	if r.video != nil {
		if err := r.video.Write(frame.Pix); err != nil {
			return fmt.Errorf("write video frame %d: %w", index, err)
		}
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
