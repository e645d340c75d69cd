package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"instafilter/internal/logger"
)

// DefaultStepTimeout bounds how long one component may take to shut down
const DefaultStepTimeout = 10 * time.Second

type Shutdownable interface {
	Shutdown()
}

// Func adapts a plain function to Shutdownable
type Func func()

func (f Func) Shutdown() { f() }

type component struct {
	name string
	Shutdownable
}

type Manager struct {
	components  []component
	logger      logger.Logger
	stepTimeout time.Duration
	mu          sync.Mutex
	done        chan struct{}
	ctx         context.Context
	cancel      context.CancelFunc
}

func NewManager(ctx context.Context, log logger.Logger) *Manager {
	if log == nil {
		log = logger.NewNop()
	}
	ctx, cancel := context.WithCancel(ctx)

	return &Manager{
		logger:      log,
		stepTimeout: DefaultStepTimeout,
		done:        make(chan struct{}),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// SetStepTimeout overrides DefaultStepTimeout
func (m *Manager) SetStepTimeout(timeout time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stepTimeout = timeout
}

// Register adds a component. Components stop in reverse registration order.
func (m *Manager) Register(name string, c Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.components = append(m.components, component{name: name, Shutdownable: c})
}

// Listen shuts down on SIGINT or SIGTERM, then calls onSignal
func (m *Manager) Listen(onSignal func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			m.logger.Info("shutdown", "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			m.Shutdown()
			if onSignal != nil {
				onSignal()
			}
		case <-m.done:
		}
	}()
}

// Shutdown stops every registered component once. Later calls return immediately.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.done:
		return
	default:
		close(m.done)
	}

	m.logger.Info("shutdown", "shutdown sequence initiated", map[string]interface{}{
		"components": len(m.components),
	})

	m.cancel()

	for i := len(m.components) - 1; i >= 0; i-- {
		c := m.components[i]

		done := make(chan struct{})
		go func() {
			defer close(done)
			c.Shutdown()
		}()

		select {
		case <-done:
			m.logger.Debug("shutdown", "component stopped", map[string]interface{}{
				"component": c.name,
			})
		case <-time.After(m.stepTimeout):
			m.logger.Warning("shutdown", "component shutdown timeout", map[string]interface{}{
				"component": c.name,
			})
		}
	}

	m.logger.Info("shutdown", "shutdown sequence completed", nil)
}

// Context is cancelled when shutdown starts
func (m *Manager) Context() context.Context {
	return m.ctx
}

func (m *Manager) Done() <-chan struct{} {
	return m.done
}
