package button

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/kenshaw/evdev"

	"coopdoor/logger"
)

// Keyboard treats any key of an input device (a USB keypad or a GPIO key
// exposed through gpio-keys) as the button.
type Keyboard struct {
	device  *evdev.Evdev
	pressed atomic.Bool
	cancel  context.CancelFunc
}

// NewKeyboard opens device and starts tracking key state.
func NewKeyboard(device string) (*Keyboard, error) {
	dev, err := evdev.OpenFile(device)
	if err != nil {
		return nil, fmt.Errorf("open evdev %s: %w", device, err)
	}

	logger.Named("button").Infow("opened button device", "device", device, "name", dev.Name())

	ctx, cancel := context.WithCancel(context.Background())
	k := &Keyboard{device: dev, cancel: cancel}
	go k.listen(ctx)
	return k, nil
}

func (k *Keyboard) listen(ctx context.Context) {
	ch := k.device.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-ch:
			if event == nil {
				return
			}
			switch event.Type.(type) {
			case evdev.KeyType:
				// 1 press, 2 autorepeat, 0 release
				k.pressed.Store(event.Value != 0)
			}
		}
	}
}

// Pressed implements Input.Pressed.
func (k *Keyboard) Pressed() bool {
	return k.pressed.Load()
}

// Release implements Input.Release.
func (k *Keyboard) Release() error {
	k.cancel()
	if k.device == nil {
		return nil
	}
	return k.device.Close()
}
