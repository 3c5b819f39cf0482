package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// Device errors.
var (
	// ErrUnknownBackend is returned by OpenDevice for an unsupported name.
	ErrUnknownBackend = errors.New("gpu: unknown backend")

	// ErrNoAdapter is returned when the backend exposes no adapters.
	ErrNoAdapter = errors.New("gpu: no adapters found")
)

// Backend names accepted by OpenDevice.
const (
	BackendNoop   = "noop"
	BackendVulkan = "vulkan"
)

// Device is an open HAL device with its queue and instance.
type Device struct {
	Device  hal.Device
	Queue   hal.Queue
	Backend string
	Adapter string

	instance hal.Instance
}

// OpenDevice opens a device on the named backend.
func OpenDevice(backend string) (*Device, error) {
	var (
		instance hal.Instance
		err      error
	)
	switch backend {
	case BackendNoop:
		api := noop.API{}
		instance, err = api.CreateInstance(nil)
	case BackendVulkan:
		b, ok := hal.GetBackend(gputypes.BackendVulkan)
		if !ok {
			return nil, fmt.Errorf("%w: vulkan backend not available", ErrUnknownBackend)
		}
		instance, err = b.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}

	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}

	slogger().Info("gpu: device opened", "backend", backend, "adapter", selected.Info.Name)
	return &Device{
		Device:   openDev.Device,
		Queue:    openDev.Queue,
		Backend:  backend,
		Adapter:  selected.Info.Name,
		instance: instance,
	}, nil
}

// Close destroys the device and its instance. Close is safe to call more
// than once.
func (d *Device) Close() {
	if d.Device != nil {
		d.Device.Destroy()
		d.Device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
}
