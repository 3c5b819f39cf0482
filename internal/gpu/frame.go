package gpu

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/wgpu/hal"
)

// submitTimeout bounds how long ClearFrame waits for the GPU.
const submitTimeout = 5 * time.Second

// ErrTimeout is returned when submitted work does not finish within the
// wait timeout.
var ErrTimeout = errors.New("gpu: timed out waiting for GPU")

// ClearFrame records a clear pass over targets, submits it and waits for
// the GPU to finish.
func ClearFrame(dev *Device, targets []Target) error {
	encoder, err := dev.Device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "clear_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("clear"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(ClearPassDescriptor(Views(targets)...))
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer dev.Device.FreeCommandBuffer(cmdBuf)

	fence, err := dev.Device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer dev.Device.DestroyFence(fence)

	if err := dev.Queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if err := waitResult(dev.Device.Wait(fence, 1, submitTimeout)); err != nil {
		return err
	}

	slogger().Debug("gpu: clear pass submitted", "attachments", len(targets))
	return nil
}

// waitResult turns the result of a fence wait into an error.
func waitResult(ok bool, err error) error {
	switch {
	case err != nil:
		return fmt.Errorf("wait for GPU: %w", err)
	case !ok:
		return fmt.Errorf("%w after %v", ErrTimeout, submitTimeout)
	default:
		return nil
	}
}
