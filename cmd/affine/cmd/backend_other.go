//go:build !windows

package cmd

import "errors"

func runWebGPU(_ *request) error {
	return errors.New("webgpu: backend is only built on windows")
}
