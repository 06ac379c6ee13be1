//go:build windows

package cmd

import (
	"errors"

	"github.com/born-ml/born/backend/webgpu"
)

func runWebGPU(req *request) error {
	if !webgpu.IsAvailable() {
		return errors.New("webgpu: no compatible adapter found")
	}
	gpu, err := webgpu.New()
	if err != nil {
		return err
	}
	defer gpu.Release()

	return dispatch(req, gpu)
}
